// Package types 定义预言机定价记录相关的核心类型
package types

import (
	"bytes"
	"errors"
)

// 定价记录布局常量
//
// 二进制布局（小端序）：
//
//	offset  size  field
//	0       8     Version
//	8       8     Spot
//	16      8     MovingAverage
//	24      8     Timestamp
//	32      64    Signature (r||s 原始字节)
//
// 该布局在线上、存储和内存之间保持一致，任何字段重排都会破坏签名校验。
const (
	PricingRecordSignatureSize    = 64
	PricingRecordSignatureHexSize = PricingRecordSignatureSize * 2
	PricingRecordFieldsSize       = 4 * 8
	PricingRecordBlobSize         = PricingRecordFieldsSize + PricingRecordSignatureSize
)

// 解码阶段错误
var (
	// ErrMalformedSignatureEncoding 十六进制签名无法解析为恰好64字节
	ErrMalformedSignatureEncoding = errors.New("malformed signature encoding")

	// ErrTruncatedInput 二进制数据短于固定布局长度
	ErrTruncatedInput = errors.New("truncated pricing record input")
)

// PricingSignature 定价记录签名（64字节 r||s）
type PricingSignature [PricingRecordSignatureSize]byte

// PricingRecord 预言机定价记录
//
// 🎯 **值语义**：
// - 零值即规范的"空记录"，表示区块未携带价格数据
// - 签名为定长数组，赋值即完整拷贝，不存在共享底层内存
// - 通过校验后只读，策略层不修改记录
type PricingRecord struct {
	Version       uint64           // 记录结构版本
	Spot          uint64           // 即期价格
	MovingAverage uint64           // 移动平均价格
	Timestamp     uint64           // 发布方声明的时间（Unix 秒）
	Signature     PricingSignature // 对前四个字段的签名
}

// IsEmpty 判断是否为空记录
//
// 空记录表示"没有价格数据"，在激活版本前后都被视为合法。
func (pr PricingRecord) IsEmpty() bool {
	return pr.Equal(PricingRecord{})
}

// Equal 逐字段比较，签名完整比较
func (pr PricingRecord) Equal(other PricingRecord) bool {
	return pr.Version == other.Version &&
		pr.Spot == other.Spot &&
		pr.MovingAverage == other.MovingAverage &&
		pr.Timestamp == other.Timestamp &&
		bytes.Equal(pr.Signature[:], other.Signature[:])
}

// HasMissingRates 即期价格或移动平均价格为0
func (pr PricingRecord) HasMissingRates() bool {
	return pr.Spot == 0 || pr.MovingAverage == 0
}

// IsZero 签名是否全零
func (s PricingSignature) IsZero() bool {
	return s == PricingSignature{}
}
