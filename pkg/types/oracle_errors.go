// Package types 定义定价记录准入相关的错误类型
package types

import (
	"errors"
	"fmt"
)

// ErrPricingRecordRejected 所有准入拒绝错误都匹配该哨兵（errors.Is）
var ErrPricingRecordRejected = errors.New("pricing record rejected")

// RejectReason 准入拒绝原因
type RejectReason int32

const (
	RejectReasonNone RejectReason = iota
	RejectReasonUnexpectedRecordBeforeActivation
	RejectReasonMissingRates
	RejectReasonInvalidSignature
	RejectReasonTimestampTooFarInFuture
	RejectReasonTimestampNotAdvancing
)

// String 返回稳定的原因标识（用于日志、指标标签和事件）
func (r RejectReason) String() string {
	switch r {
	case RejectReasonNone:
		return "none"
	case RejectReasonUnexpectedRecordBeforeActivation:
		return "unexpected_record_before_activation"
	case RejectReasonMissingRates:
		return "missing_rates"
	case RejectReasonInvalidSignature:
		return "invalid_signature"
	case RejectReasonTimestampTooFarInFuture:
		return "timestamp_too_far_in_future"
	case RejectReasonTimestampNotAdvancing:
		return "timestamp_not_advancing"
	default:
		return fmt.Sprintf("unknown(%d)", int32(r))
	}
}

// PricingRecordError 定价记录准入错误
//
// 策略层的所有拒绝都以该类型返回，调用方据此得到布尔结论和可读原因。
type PricingRecordError struct {
	Reason RejectReason // 拒绝原因
	Detail string       // 诊断信息
	Err    error        // 底层错误（可选，如公钥解析失败）
}

// Error 实现 error 接口
func (e *PricingRecordError) Error() string {
	msg := fmt.Sprintf("pricing record rejected: %s", e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap 返回底层错误
func (e *PricingRecordError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrPricingRecordRejected) 对所有拒绝成立
func (e *PricingRecordError) Is(target error) bool {
	return target == ErrPricingRecordRejected
}

// NewPricingRecordError 创建准入错误
func NewPricingRecordError(reason RejectReason, detail string, err error) *PricingRecordError {
	return &PricingRecordError{Reason: reason, Detail: detail, Err: err}
}

// IsPricingRecordError 检查错误是否为准入错误
func IsPricingRecordError(err error) (*PricingRecordError, bool) {
	if err == nil {
		return nil, false
	}
	var prErr *PricingRecordError
	if errors.As(err, &prErr) {
		return prErr, true
	}
	return nil, false
}

// RejectReasonOf 提取拒绝原因，nil 或非准入错误返回 RejectReasonNone
func RejectReasonOf(err error) RejectReason {
	if prErr, ok := IsPricingRecordError(err); ok {
		return prErr.Reason
	}
	return RejectReasonNone
}
