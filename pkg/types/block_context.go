package types

// BlockContext 定价记录准入所需的区块上下文
//
// 由调用方（区块校验流程）提供，策略层只读。
type BlockContext struct {
	Network                NetworkType // 网络类型，用于选择受信公钥
	ProtocolVersion        uint32      // 区块协议版本（硬分叉版本）
	BlockTimestamp         uint64      // 当前区块时间戳（Unix 秒）
	PreviousBlockTimestamp uint64      // 上一区块时间戳（Unix 秒）
}
