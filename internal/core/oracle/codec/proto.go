package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/weisyn/pricing/pkg/types"
)

// protobuf 线上容器字段编号
//
//	message PricingRecord {
//	  uint64 pr_version     = 1;
//	  uint64 spot           = 2;
//	  uint64 moving_average = 3;
//	  uint64 timestamp      = 4;
//	  string signature      = 5; // 128位十六进制
//	}
const (
	protoFieldVersion       protowire.Number = 1
	protoFieldSpot          protowire.Number = 2
	protoFieldMovingAverage protowire.Number = 3
	protoFieldTimestamp     protowire.Number = 4
	protoFieldSignature     protowire.Number = 5
)

// ErrMalformedWire protobuf 线上容器格式错误
var ErrMalformedWire = errors.New("malformed pricing record wire container")

// MarshalProtoWire 编码为 protobuf 线上容器
//
// 整数字段为零时按 proto3 语义省略；签名字段总是写出。
func MarshalProtoWire(pr types.PricingRecord) []byte {
	w := ToWire(pr)
	b := make([]byte, 0, 4*(1+protowire.SizeVarint(^uint64(0)))+2+len(w.Signature)+2)

	b = appendVarintField(b, protoFieldVersion, w.PRVersion)
	b = appendVarintField(b, protoFieldSpot, w.Spot)
	b = appendVarintField(b, protoFieldMovingAverage, w.MovingAverage)
	b = appendVarintField(b, protoFieldTimestamp, w.Timestamp)

	b = protowire.AppendTag(b, protoFieldSignature, protowire.BytesType)
	b = protowire.AppendString(b, w.Signature)
	return b
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// UnmarshalProtoWire 从 protobuf 线上容器解码
//
// 未知字段被跳过；已知字段的线型不符、截断或签名格式错误都会失败。
func UnmarshalProtoWire(data []byte) (types.PricingRecord, error) {
	var w WireRecord

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return types.PricingRecord{}, fmt.Errorf("%w: tag: %v", ErrMalformedWire, protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case protoFieldVersion, protoFieldSpot, protoFieldMovingAverage, protoFieldTimestamp:
			if typ != protowire.VarintType {
				return types.PricingRecord{}, fmt.Errorf("%w: field %d has wire type %d", ErrMalformedWire, num, typ)
			}
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return types.PricingRecord{}, fmt.Errorf("%w: field %d: %v", ErrMalformedWire, num, protowire.ParseError(m))
			}
			data = data[m:]
			switch num {
			case protoFieldVersion:
				w.PRVersion = v
			case protoFieldSpot:
				w.Spot = v
			case protoFieldMovingAverage:
				w.MovingAverage = v
			case protoFieldTimestamp:
				w.Timestamp = v
			}

		case protoFieldSignature:
			if typ != protowire.BytesType {
				return types.PricingRecord{}, fmt.Errorf("%w: signature has wire type %d", ErrMalformedWire, typ)
			}
			s, m := protowire.ConsumeString(data)
			if m < 0 {
				return types.PricingRecord{}, fmt.Errorf("%w: signature: %v", ErrMalformedWire, protowire.ParseError(m))
			}
			data = data[m:]
			w.Signature = s

		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return types.PricingRecord{}, fmt.Errorf("%w: field %d: %v", ErrMalformedWire, num, protowire.ParseError(m))
			}
			data = data[m:]
		}
	}

	return FromWire(w)
}
