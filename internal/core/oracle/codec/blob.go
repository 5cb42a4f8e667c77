package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/weisyn/pricing/pkg/types"
)

// blobOrder 二进制块整数字节序
//
// 固定为小端序，签名方、存储方和验证方必须一致。
// 签名消息是十进制文本，与块字节序无关。
var blobOrder = binary.LittleEndian

// ToBinaryBlob 编码为96字节固定布局
func ToBinaryBlob(pr types.PricingRecord) [types.PricingRecordBlobSize]byte {
	var blob [types.PricingRecordBlobSize]byte
	blobOrder.PutUint64(blob[0:8], pr.Version)
	blobOrder.PutUint64(blob[8:16], pr.Spot)
	blobOrder.PutUint64(blob[16:24], pr.MovingAverage)
	blobOrder.PutUint64(blob[24:32], pr.Timestamp)
	copy(blob[types.PricingRecordFieldsSize:], pr.Signature[:])
	return blob
}

// AppendBinaryBlob 将记录的固定布局追加到 dst
func AppendBinaryBlob(dst []byte, pr types.PricingRecord) []byte {
	blob := ToBinaryBlob(pr)
	return append(dst, blob[:]...)
}

// FromBinaryBlob 从固定布局解码
//
// 至少需要96字节，不足时返回 ErrTruncatedInput；多余字节被忽略。
func FromBinaryBlob(data []byte) (types.PricingRecord, error) {
	pr, _, err := DecodeBlobPrefix(data)
	return pr, err
}

// DecodeBlobPrefix 从 data 开头解码一条记录，并返回消耗的字节数
func DecodeBlobPrefix(data []byte) (types.PricingRecord, int, error) {
	if len(data) < types.PricingRecordBlobSize {
		return types.PricingRecord{}, 0, fmt.Errorf("%w: need %d bytes, have %d",
			types.ErrTruncatedInput, types.PricingRecordBlobSize, len(data))
	}

	pr := types.PricingRecord{
		Version:       blobOrder.Uint64(data[0:8]),
		Spot:          blobOrder.Uint64(data[8:16]),
		MovingAverage: blobOrder.Uint64(data[16:24]),
		Timestamp:     blobOrder.Uint64(data[24:32]),
	}
	copy(pr.Signature[:], data[types.PricingRecordFieldsSize:types.PricingRecordBlobSize])

	return pr, types.PricingRecordBlobSize, nil
}
