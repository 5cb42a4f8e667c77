package oracle

// 预言机定价记录配置默认值
const (
	// defaultActivationVersion 定价记录激活的协议版本
	// 低于该版本的区块只能携带空记录；按链的硬分叉计划覆盖
	defaultActivationVersion uint32 = 21

	// defaultMaxFutureSkewSeconds 记录时间戳允许超前区块时间戳的秒数
	// 覆盖发布方与矿工之间的时钟偏差和出块间隔抖动
	defaultMaxFutureSkewSeconds uint64 = 120
)
