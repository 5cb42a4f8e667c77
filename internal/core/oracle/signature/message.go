// Package signature 实现定价记录签名验证
//
// 🎯 **签名约定**：
// - 签名消息为紧凑JSON文本，字段顺序固定，十进制整数，无空白：
//
//	{"pr_version":V,"spot":S,"moving_average":M,"timestamp":T}
//
// - 摘要算法 SHA-256
// - ECDSA，曲线为 P-256 或 secp256k1，由公钥的 SPKI 曲线标识决定
// - 签名为原始 r||s（各32字节，大端）
//
// 签名本身不参与消息构造。公钥每次调用重新解析，不缓存任何密码学状态。
package signature

import (
	"strconv"

	"github.com/weisyn/pricing/pkg/types"
)

// maxMessageSize 四个 uint64 十进制文本加固定字段名的上界
const maxMessageSize = len(`{"pr_version":,"spot":,"moving_average":,"timestamp":}`) + 4*20

// BuildMessage 构造被签名的规范消息
//
// 相同数值字段总是产生逐字节相同的消息，与签名字段无关。
func BuildMessage(record types.PricingRecord) []byte {
	b := make([]byte, 0, maxMessageSize)
	b = append(b, `{"pr_version":`...)
	b = strconv.AppendUint(b, record.Version, 10)
	b = append(b, `,"spot":`...)
	b = strconv.AppendUint(b, record.Spot, 10)
	b = append(b, `,"moving_average":`...)
	b = strconv.AppendUint(b, record.MovingAverage, 10)
	b = append(b, `,"timestamp":`...)
	b = strconv.AppendUint(b, record.Timestamp, 10)
	b = append(b, '}')
	return b
}
