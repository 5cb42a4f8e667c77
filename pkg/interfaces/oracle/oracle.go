// Package oracle 定义预言机定价记录准入的公共接口
//
// 🎯 **职责边界**：
// - SignatureVerifier：验证签名是否把数值字段绑定到受信公钥
// - TrustedKeyResolver：按网络类型提供受信公钥（由配置提供，核心不管理密钥）
// - AdmissibilityPolicy：对单条记录在给定区块上下文下做出准入结论
// - VerdictObserver：观察准入结论（指标、事件），不得影响结论本身
package oracle

import (
	"time"

	"github.com/weisyn/pricing/pkg/types"
)

// SignatureVerifier 定价记录签名验证器
type SignatureVerifier interface {
	// Verify 验证记录签名
	//
	// 签名不匹配返回 (false, nil)；公钥为空、无法解析或算法不受支持时返回错误。
	Verify(record types.PricingRecord, publicKeyPEM string) (bool, error)
}

// TrustedKeyResolver 受信公钥解析器
type TrustedKeyResolver interface {
	// TrustedKey 返回指定网络的 PEM 公钥
	TrustedKey(network types.NetworkType) (string, error)
}

// AdmissibilityPolicy 定价记录准入策略
type AdmissibilityPolicy interface {
	// Validate 返回 nil 表示准入；拒绝时返回 *types.PricingRecordError
	Validate(record types.PricingRecord, ctx types.BlockContext) error

	// Valid Validate 的布尔形式
	Valid(record types.PricingRecord, ctx types.BlockContext) bool
}

// Verdict 一次准入判定的结果
type Verdict struct {
	RunID          string // 关联ID（回放时设置，可为空）
	Record         types.PricingRecord
	Context        types.BlockContext
	Accepted       bool
	Reason         types.RejectReason // 接受时为 RejectReasonNone
	Err            error              // 拒绝错误，接受时为 nil
	VerifyDuration time.Duration      // 签名验证耗时，未执行验证时为0
}

// VerdictObserver 准入结论观察者
//
// 实现必须并发安全，且不得阻塞判定流程。
type VerdictObserver interface {
	ObserveVerdict(v Verdict)
}
