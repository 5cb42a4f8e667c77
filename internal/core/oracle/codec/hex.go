// Package codec 实现定价记录的编解码
//
// 🎯 **编解码形态**：
// - 十六进制签名：64字节签名 ↔ 128位小写十六进制文本
// - 线上结构：整数字段 + 十六进制签名（JSON / protobuf wire）
// - 二进制块：96字节固定布局（小端序），用于紧凑存储
//
// 所有解码失败都在边界处返回错误，不会产生半成品记录。
package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/weisyn/pricing/pkg/types"
)

// EncodeSignatureHex 将64字节签名编码为128位小写十六进制
func EncodeSignatureHex(sig types.PricingSignature) string {
	return hex.EncodeToString(sig[:])
}

// DecodeSignatureHex 将十六进制文本解码为64字节签名
//
// 失败情形（均返回 ErrMalformedSignatureEncoding）：
// - 奇数长度
// - 长度不等于128
// - 含非十六进制字符
//
// 输入大小写均可，不做任何补零或截断。
func DecodeSignatureHex(s string) (types.PricingSignature, error) {
	var sig types.PricingSignature

	if len(s)%2 != 0 {
		return sig, fmt.Errorf("%w: odd length %d", types.ErrMalformedSignatureEncoding, len(s))
	}
	if len(s) != types.PricingRecordSignatureHexSize {
		return sig, fmt.Errorf("%w: expected %d hex characters, got %d",
			types.ErrMalformedSignatureEncoding, types.PricingRecordSignatureHexSize, len(s))
	}

	n, err := hex.Decode(sig[:], []byte(s))
	if err != nil {
		return types.PricingSignature{}, fmt.Errorf("%w: %v", types.ErrMalformedSignatureEncoding, err)
	}
	if n != types.PricingRecordSignatureSize {
		return types.PricingSignature{}, fmt.Errorf("%w: decoded %d bytes", types.ErrMalformedSignatureEncoding, n)
	}

	return sig, nil
}
