package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/weisyn/pricing/internal/core/oracle/codec"
	"github.com/weisyn/pricing/pkg/types"
)

// 记录的输入/输出编码
const (
	encodingJSON  = "json"
	encodingBlob  = "blob"
	encodingProto = "proto"
)

// recordInput 记录来源标志
type recordInput struct {
	path     string // JSON 线上结构文件，"-" 为标准输入
	blobHex  string // 96字节二进制块的十六进制
	protoHex string // protobuf 容器的十六进制
}

// load 从恰好一个来源读取记录
func (in recordInput) load(c *cli) (types.PricingRecord, error) {
	sources := 0
	for _, s := range []string{in.path, in.blobHex, in.protoHex} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return types.PricingRecord{}, errors.New("必须且只能指定 --record、--blob、--proto 之一")
	}

	switch {
	case in.path != "":
		data, err := c.readInput(in.path)
		if err != nil {
			return types.PricingRecord{}, fmt.Errorf("读取记录失败: %w", err)
		}
		return codec.UnmarshalWireJSON(data)
	case in.blobHex != "":
		return decodeRecordHex(in.blobHex, encodingBlob)
	default:
		return decodeRecordHex(in.protoHex, encodingProto)
	}
}

// decodeRecordHex 按编码解析十六进制形式的记录
func decodeRecordHex(s, encoding string) (types.PricingRecord, error) {
	data, err := hex.DecodeString(readHexArg(s))
	if err != nil {
		return types.PricingRecord{}, fmt.Errorf("十六进制输入无效: %w", err)
	}

	switch encoding {
	case encodingBlob:
		return codec.FromBinaryBlob(data)
	case encodingProto:
		return codec.UnmarshalProtoWire(data)
	default:
		return types.PricingRecord{}, fmt.Errorf("未知编码: %q", encoding)
	}
}
