package core

import "strings"

// FeatureGroup 是特征存储中拥有特征列的表状实体。
// 训练数据集中的特征通过弱引用回查其所属的 FeatureGroup。
type FeatureGroup struct {
	// ID 服务端分配的资源 ID
	ID int `json:"id,omitempty"`

	// Name 特征组名称
	Name string `json:"name"`

	// Version 特征组版本
	Version int `json:"version"`

	// OnlineEnabled 是否启用在线存储（可用于在线服务读取）
	OnlineEnabled bool `json:"onlineEnabled,omitempty"`

	// PrimaryKey 主键列名列表（在线读取时的实体键）
	PrimaryKey []string `json:"primaryKey,omitempty"`

	// EventTime 事件时间列名
	EventTime string `json:"eventTime,omitempty"`

	// Features 特征组的字段定义（按服务端返回顺序）
	Features []*FeatureGroupField `json:"features,omitempty"`
}

// FeatureGroupField 是特征组中的一个字段定义。
type FeatureGroupField struct {
	// Name 字段名
	Name string `json:"name"`

	// Type 类型标签（特征存储类型词汇表）
	Type string `json:"type,omitempty"`

	// Primary 是否为主键字段
	Primary bool `json:"primary,omitempty"`

	// Partition 是否为分区字段（不作为训练特征）
	Partition bool `json:"partition,omitempty"`
}

// FeatureNames 返回特征组中可作为特征的字段名（跳过分区字段）。
func (fg *FeatureGroup) FeatureNames() []string {
	var names []string
	for _, field := range fg.Features {
		if field.Partition {
			continue
		}
		names = append(names, field.Name)
	}
	return names
}

// GetFeature 按名称查找字段定义（大小写不敏感）。
func (fg *FeatureGroup) GetFeature(name string) (*FeatureGroupField, bool) {
	lower := strings.ToLower(name)
	for _, field := range fg.Features {
		if strings.ToLower(field.Name) == lower {
			return field, true
		}
	}
	return nil, false
}
