package event

// 事件系统默认配置值
const (
	// defaultEnabled 默认发布准入事件
	// 无订阅者时发布开销可忽略
	defaultEnabled = true

	// defaultHistorySize 每类事件保留的最近事件数，0 表示不保留
	defaultHistorySize = 0
)
