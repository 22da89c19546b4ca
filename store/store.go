package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 接口。
//
// 在线特征行的存储约定：
//   - 每个特征组的一行是一个 Hash，key 为 "fg:{name}:{version}:{entityKey}"
//   - Hash field 为特征名（小写），value 为特征值的序列化形式
//
// 示例：
//   var s core.Store = NewMemoryStore()
