package codec_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/weisyn/pricing/internal/core/oracle/codec"
	"github.com/weisyn/pricing/pkg/types"
)

func sampleRecord() types.PricingRecord {
	pr := types.PricingRecord{
		Version:       1,
		Spot:          123456789,
		MovingAverage: 123000000,
		Timestamp:     1_700_000_000,
	}
	for i := range pr.Signature {
		pr.Signature[i] = byte(i * 7)
	}
	return pr
}

// TestSignatureHex_RoundTrip 测试十六进制编解码往返
func TestSignatureHex_RoundTrip(t *testing.T) {
	// Arrange
	sig := sampleRecord().Signature

	// Act
	s := codec.EncodeSignatureHex(sig)
	got, err := codec.DecodeSignatureHex(s)

	// Assert
	require.NoError(t, err)
	assert.Len(t, s, types.PricingRecordSignatureHexSize)
	assert.Equal(t, strings.ToLower(s), s)
	assert.Equal(t, sig, got)
}

// TestDecodeSignatureHex_AcceptsUpperCase 测试大写十六进制输入
func TestDecodeSignatureHex_AcceptsUpperCase(t *testing.T) {
	sig := sampleRecord().Signature
	upper := strings.ToUpper(codec.EncodeSignatureHex(sig))

	got, err := codec.DecodeSignatureHex(upper)
	require.NoError(t, err)
	assert.Equal(t, sig, got)
	assert.Equal(t, strings.ToLower(upper), codec.EncodeSignatureHex(got))
}

// TestDecodeSignatureHex_Malformed 测试格式错误的签名文本
func TestDecodeSignatureHex_Malformed(t *testing.T) {
	valid := codec.EncodeSignatureHex(sampleRecord().Signature)

	cases := map[string]string{
		"empty":     "",
		"odd":       valid[:127],
		"short":     valid[:126],
		"long":      valid + "00",
		"non_hex":   "zz" + valid[2:],
		"space":     " " + valid[1:],
		"odd_short": "abc",
		"len_129":   valid + "0",
		"non_ascii": valid[:126] + "é",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := codec.DecodeSignatureHex(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrMalformedSignatureEncoding))
			assert.True(t, got.IsZero())
		})
	}
}

// TestBinaryBlob_RoundTrip 测试二进制块往返
func TestBinaryBlob_RoundTrip(t *testing.T) {
	pr := sampleRecord()

	blob := codec.ToBinaryBlob(pr)
	got, err := codec.FromBinaryBlob(blob[:])

	require.NoError(t, err)
	assert.True(t, pr.Equal(got))
	assert.Len(t, blob, types.PricingRecordBlobSize)
}

// TestBinaryBlob_LittleEndianLayout 测试二进制块字段布局
func TestBinaryBlob_LittleEndianLayout(t *testing.T) {
	pr := types.PricingRecord{Version: 0x0102, Spot: 1, MovingAverage: 2, Timestamp: 3}
	pr.Signature[0] = 0xee
	pr.Signature[63] = 0xff

	blob := codec.ToBinaryBlob(pr)

	assert.Equal(t, byte(0x02), blob[0])
	assert.Equal(t, byte(0x01), blob[1])
	assert.Equal(t, byte(1), blob[8])
	assert.Equal(t, byte(2), blob[16])
	assert.Equal(t, byte(3), blob[24])
	assert.Equal(t, byte(0xee), blob[32])
	assert.Equal(t, byte(0xff), blob[95])
}

// TestFromBinaryBlob_Truncated 测试短输入
func TestFromBinaryBlob_Truncated(t *testing.T) {
	blob := codec.ToBinaryBlob(sampleRecord())

	for _, n := range []int{0, 1, 32, types.PricingRecordBlobSize - 1} {
		_, err := codec.FromBinaryBlob(blob[:n])
		assert.True(t, errors.Is(err, types.ErrTruncatedInput), "len=%d", n)
	}
}

// TestDecodeBlobPrefix_Stream 测试连续块解码与多余字节忽略
func TestDecodeBlobPrefix_Stream(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.Timestamp++

	buf := codec.AppendBinaryBlob(nil, a)
	buf = codec.AppendBinaryBlob(buf, b)
	buf = append(buf, 0xde, 0xad)

	first, n, err := codec.DecodeBlobPrefix(buf)
	require.NoError(t, err)
	assert.Equal(t, types.PricingRecordBlobSize, n)
	assert.True(t, a.Equal(first))

	second, err := codec.FromBinaryBlob(buf[n:])
	require.NoError(t, err)
	assert.True(t, b.Equal(second))

	_, _, err = codec.DecodeBlobPrefix(buf[2*n:])
	assert.True(t, errors.Is(err, types.ErrTruncatedInput))
}

// TestWireJSON_RoundTrip 测试 JSON 线上格式往返
func TestWireJSON_RoundTrip(t *testing.T) {
	pr := sampleRecord()

	data, err := codec.MarshalWireJSON(pr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pr_version":1`)
	assert.Contains(t, string(data), `"moving_average":123000000`)

	got, err := codec.UnmarshalWireJSON(data)
	require.NoError(t, err)
	assert.True(t, pr.Equal(got))
}

// TestWireJSON_MaxValues 测试整数字段取最大值时的往返
func TestWireJSON_MaxValues(t *testing.T) {
	pr := sampleRecord()
	pr.Version = math.MaxUint64
	pr.Timestamp = math.MaxUint64

	data, err := codec.MarshalWireJSON(pr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pr_version":18446744073709551615`)

	got, err := codec.UnmarshalWireJSON(data)
	require.NoError(t, err)
	assert.True(t, pr.Equal(got))
}

// TestWireJSON_EmptyRecord 测试空记录线上往返
func TestWireJSON_EmptyRecord(t *testing.T) {
	data, err := codec.MarshalWireJSON(types.PricingRecord{})
	require.NoError(t, err)

	got, err := codec.UnmarshalWireJSON(data)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

// TestFromWire_BadSignature 测试线上签名错误
func TestFromWire_BadSignature(t *testing.T) {
	w := codec.ToWire(sampleRecord())
	w.Signature = w.Signature[:100]

	_, err := codec.FromWire(w)
	assert.True(t, errors.Is(err, types.ErrMalformedSignatureEncoding))

	_, err = codec.UnmarshalWireJSON([]byte(`{"pr_version":1,"signature":"0"}`))
	assert.True(t, errors.Is(err, types.ErrMalformedSignatureEncoding))

	_, err = codec.UnmarshalWireJSON([]byte(`{"pr_version":`))
	assert.Error(t, err)
}

// TestProtoWire_RoundTrip 测试 protobuf 容器往返
func TestProtoWire_RoundTrip(t *testing.T) {
	for _, pr := range []types.PricingRecord{sampleRecord(), {}} {
		data := codec.MarshalProtoWire(pr)
		got, err := codec.UnmarshalProtoWire(data)
		require.NoError(t, err)
		assert.True(t, pr.Equal(got))
	}
}

// TestProtoWire_SkipsUnknownFields 测试未知字段被跳过
func TestProtoWire_SkipsUnknownFields(t *testing.T) {
	pr := sampleRecord()
	data := protowire.AppendTag(nil, 99, protowire.VarintType)
	data = protowire.AppendVarint(data, 7)
	data = protowire.AppendTag(data, 100, protowire.BytesType)
	data = protowire.AppendBytes(data, []byte("extra"))
	data = append(data, codec.MarshalProtoWire(pr)...)

	got, err := codec.UnmarshalProtoWire(data)
	require.NoError(t, err)
	assert.True(t, pr.Equal(got))
}

// TestProtoWire_Malformed 测试格式错误的容器
func TestProtoWire_Malformed(t *testing.T) {
	valid := codec.MarshalProtoWire(sampleRecord())

	// 截断
	_, err := codec.UnmarshalProtoWire(valid[:len(valid)-1])
	assert.True(t, errors.Is(err, codec.ErrMalformedWire))

	// 整数字段线型错误
	bad := protowire.AppendTag(nil, 2, protowire.BytesType)
	bad = protowire.AppendString(bad, "1")
	_, err = codec.UnmarshalProtoWire(bad)
	assert.True(t, errors.Is(err, codec.ErrMalformedWire))

	// 签名字段线型错误
	bad = protowire.AppendTag(nil, 5, protowire.VarintType)
	bad = protowire.AppendVarint(bad, 1)
	_, err = codec.UnmarshalProtoWire(bad)
	assert.True(t, errors.Is(err, codec.ErrMalformedWire))

	// 签名内容非法
	bad = protowire.AppendTag(nil, 5, protowire.BytesType)
	bad = protowire.AppendString(bad, "xyz")
	_, err = codec.UnmarshalProtoWire(bad)
	assert.True(t, errors.Is(err, types.ErrMalformedSignatureEncoding))

	// 缺失签名字段
	_, err = codec.UnmarshalProtoWire(nil)
	assert.True(t, errors.Is(err, types.ErrMalformedSignatureEncoding))
}
