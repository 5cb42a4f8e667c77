package codec

import (
	"encoding/json"
	"fmt"

	"github.com/weisyn/pricing/pkg/types"
)

// WireRecord 定价记录的线上结构
//
// 整数字段为普通十进制整数，签名为128位十六进制文本。
type WireRecord struct {
	PRVersion     uint64 `json:"pr_version" yaml:"pr_version"`
	Spot          uint64 `json:"spot" yaml:"spot"`
	MovingAverage uint64 `json:"moving_average" yaml:"moving_average"`
	Timestamp     uint64 `json:"timestamp" yaml:"timestamp"`
	Signature     string `json:"signature" yaml:"signature"`
}

// ToWire 映射为线上结构
func ToWire(pr types.PricingRecord) WireRecord {
	return WireRecord{
		PRVersion:     pr.Version,
		Spot:          pr.Spot,
		MovingAverage: pr.MovingAverage,
		Timestamp:     pr.Timestamp,
		Signature:     EncodeSignatureHex(pr.Signature),
	}
}

// FromWire 从线上结构还原记录
//
// 签名无法解码为恰好64字节时返回错误，不返回部分记录。
func FromWire(w WireRecord) (types.PricingRecord, error) {
	sig, err := DecodeSignatureHex(w.Signature)
	if err != nil {
		return types.PricingRecord{}, fmt.Errorf("decode wire signature: %w", err)
	}
	return types.PricingRecord{
		Version:       w.PRVersion,
		Spot:          w.Spot,
		MovingAverage: w.MovingAverage,
		Timestamp:     w.Timestamp,
		Signature:     sig,
	}, nil
}

// MarshalWireJSON 编码为 JSON 线上格式
func MarshalWireJSON(pr types.PricingRecord) ([]byte, error) {
	return json.Marshal(ToWire(pr))
}

// UnmarshalWireJSON 从 JSON 线上格式解码
func UnmarshalWireJSON(data []byte) (types.PricingRecord, error) {
	var w WireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return types.PricingRecord{}, fmt.Errorf("parse wire record: %w", err)
	}
	return FromWire(w)
}
