// Package policy 实现定价记录准入策略
//
// 🎯 **准入判定顺序**（严格按序，第一个失败即返回）：
// 1. 协议版本低于激活版本且记录非空 → 拒绝
// 2. 空记录 → 接受
// 3. 即期价格或移动平均价格为0 → 拒绝
// 4. 按网络解析受信公钥并验证签名 → 任何失败都拒绝
// 5. 记录时间戳超过 区块时间戳+最大未来偏移 → 拒绝
// 6. 记录时间戳不大于上一区块时间戳 → 拒绝
// 7. 接受
//
// 💡 **无状态**：策略只持有不可变配置和并发安全的观察者，可被多个区块校验流程并发调用。
package policy

import (
	"fmt"
	"math"
	"time"

	"github.com/weisyn/pricing/internal/core/oracle/signature"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
	oracleif "github.com/weisyn/pricing/pkg/interfaces/oracle"
	"github.com/weisyn/pricing/pkg/types"
)

// Options 准入策略参数
type Options struct {
	// ActivationVersion 定价记录激活的协议版本
	ActivationVersion uint32

	// MaxFutureSkewSeconds 允许记录时间戳超前区块时间戳的最大秒数
	MaxFutureSkewSeconds uint64
}

// Service 定价记录准入策略
type Service struct {
	options   Options
	keys      oracleif.TrustedKeyResolver
	verifier  oracleif.SignatureVerifier
	logger    log.Logger
	observers []oracleif.VerdictObserver
}

var _ oracleif.AdmissibilityPolicy = (*Service)(nil)

// NewService 创建准入策略
//
// 参数：
//   - options: 激活版本与最大未来偏移
//   - keys: 受信公钥解析器（必需）
//   - verifier: 签名验证器（可选，为空时使用默认 ECDSA 验证器）
//   - logger: 日志记录器（可选）
//   - observers: 结论观察者（可选，如指标、事件）
func NewService(
	options Options,
	keys oracleif.TrustedKeyResolver,
	verifier oracleif.SignatureVerifier,
	logger log.Logger,
	observers ...oracleif.VerdictObserver,
) (*Service, error) {
	if keys == nil {
		return nil, fmt.Errorf("keys 不能为空")
	}
	if verifier == nil {
		verifier = signature.NewVerifier(logger)
	}

	filtered := make([]oracleif.VerdictObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}

	return &Service{
		options:   options,
		keys:      keys,
		verifier:  verifier,
		logger:    logger,
		observers: filtered,
	}, nil
}

// Options 返回策略参数副本
func (s *Service) Options() Options {
	return s.options
}

// Validate 判定记录在给定区块上下文下是否可准入
//
// 返回 nil 表示接受；拒绝时返回 *types.PricingRecordError，
// errors.Is(err, types.ErrPricingRecordRejected) 恒成立。
func (s *Service) Validate(record types.PricingRecord, ctx types.BlockContext) error {
	return s.validate(record, ctx, "")
}

// Valid Validate 的布尔形式
func (s *Service) Valid(record types.PricingRecord, ctx types.BlockContext) bool {
	return s.Validate(record, ctx) == nil
}

func (s *Service) validate(record types.PricingRecord, ctx types.BlockContext, runID string) error {
	var verifyDuration time.Duration
	err := s.evaluate(record, ctx, &verifyDuration)

	if err != nil && s.logger != nil {
		s.logger.Warnf("⚠️ 定价记录被拒绝: network=%s protocol_version=%d reason=%s version=%d spot=%d moving_average=%d timestamp=%d block_timestamp=%d previous_block_timestamp=%d err=%v",
			ctx.Network, ctx.ProtocolVersion, types.RejectReasonOf(err),
			record.Version, record.Spot, record.MovingAverage, record.Timestamp,
			ctx.BlockTimestamp, ctx.PreviousBlockTimestamp, err)
	}

	s.notify(oracleif.Verdict{
		RunID:          runID,
		Record:         record,
		Context:        ctx,
		Accepted:       err == nil,
		Reason:         types.RejectReasonOf(err),
		Err:            err,
		VerifyDuration: verifyDuration,
	})
	return err
}

func (s *Service) evaluate(record types.PricingRecord, ctx types.BlockContext, verifyDuration *time.Duration) error {
	// 1. 激活前不允许携带非空记录
	if ctx.ProtocolVersion < s.options.ActivationVersion && !record.IsEmpty() {
		return types.NewPricingRecordError(types.RejectReasonUnexpectedRecordBeforeActivation,
			fmt.Sprintf("protocol version %d is below activation version %d", ctx.ProtocolVersion, s.options.ActivationVersion), nil)
	}

	// 2. 空记录总是可接受
	if record.IsEmpty() {
		return nil
	}

	// 3. 价格缺失
	if record.HasMissingRates() {
		return types.NewPricingRecordError(types.RejectReasonMissingRates,
			fmt.Sprintf("spot=%d moving_average=%d", record.Spot, record.MovingAverage), nil)
	}

	// 4. 签名
	key, err := s.keys.TrustedKey(ctx.Network)
	if err != nil {
		if s.logger != nil {
			s.logger.Errorf("❌ 无法获取受信公钥: network=%s err=%v", ctx.Network, err)
		}
		return types.NewPricingRecordError(types.RejectReasonInvalidSignature,
			fmt.Sprintf("trusted key unavailable for network %s", ctx.Network), err)
	}

	start := time.Now()
	ok, err := s.verifier.Verify(record, key)
	*verifyDuration = time.Since(start)
	if err != nil {
		if s.logger != nil {
			s.logger.Errorf("❌ 受信公钥不可用: network=%s err=%v", ctx.Network, err)
		}
		return types.NewPricingRecordError(types.RejectReasonInvalidSignature, "public key unusable", err)
	}
	if !ok {
		return types.NewPricingRecordError(types.RejectReasonInvalidSignature, "signature does not match trusted key", nil)
	}

	// 5. 时间戳不得超前过多
	limit := saturatingAdd(ctx.BlockTimestamp, s.options.MaxFutureSkewSeconds)
	if record.Timestamp > limit {
		return types.NewPricingRecordError(types.RejectReasonTimestampTooFarInFuture,
			fmt.Sprintf("timestamp %d exceeds block timestamp %d + %d", record.Timestamp, ctx.BlockTimestamp, s.options.MaxFutureSkewSeconds), nil)
	}

	// 6. 时间戳必须严格前进
	if record.Timestamp <= ctx.PreviousBlockTimestamp {
		return types.NewPricingRecordError(types.RejectReasonTimestampNotAdvancing,
			fmt.Sprintf("timestamp %d is not after previous block timestamp %d", record.Timestamp, ctx.PreviousBlockTimestamp), nil)
	}

	return nil
}

func (s *Service) notify(v oracleif.Verdict) {
	for _, o := range s.observers {
		o.ObserveVerdict(v)
	}
}

// saturatingAdd 溢出时返回 math.MaxUint64
func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
