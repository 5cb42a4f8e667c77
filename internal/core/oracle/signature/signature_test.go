package signature_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/pricing/internal/core/oracle/signature"
	"github.com/weisyn/pricing/internal/core/oracle/testutil"
	"github.com/weisyn/pricing/pkg/types"
)

func baseRecord() types.PricingRecord {
	return types.PricingRecord{
		Version:       1,
		Spot:          1_250_000_000_000,
		MovingAverage: 1_240_000_000_000,
		Timestamp:     1_700_000_000,
	}
}

func signers(t *testing.T) map[string]*testutil.Signer {
	t.Helper()
	p256, err := testutil.NewP256Signer()
	require.NoError(t, err)
	secp, err := testutil.NewSecp256k1Signer()
	require.NoError(t, err)
	return map[string]*testutil.Signer{
		"p256":      p256,
		"secp256k1": secp,
	}
}

// TestBuildMessage_ExactFormat 测试签名消息格式
func TestBuildMessage_ExactFormat(t *testing.T) {
	pr := types.PricingRecord{Version: 1, Spot: 2, MovingAverage: 3, Timestamp: 4}
	pr.Signature[0] = 0xff

	msg := signature.BuildMessage(pr)

	assert.Equal(t, `{"pr_version":1,"spot":2,"moving_average":3,"timestamp":4}`, string(msg))
}

// TestBuildMessage_MaxValues 测试最大整数值的十进制文本
func TestBuildMessage_MaxValues(t *testing.T) {
	const maxU64 = ^uint64(0)
	pr := types.PricingRecord{Version: maxU64, Spot: maxU64, MovingAverage: maxU64, Timestamp: maxU64}

	msg := signature.BuildMessage(pr)

	assert.Equal(t,
		`{"pr_version":18446744073709551615,"spot":18446744073709551615,"moving_average":18446744073709551615,"timestamp":18446744073709551615}`,
		string(msg))
}

// TestBuildMessage_IgnoresSignature 测试签名不参与消息构造
func TestBuildMessage_IgnoresSignature(t *testing.T) {
	a := baseRecord()
	b := a
	for i := range b.Signature {
		b.Signature[i] = 0x5a
	}
	assert.Equal(t, signature.BuildMessage(a), signature.BuildMessage(b))
}

// TestVerify_ValidSignature 测试有效签名验证通过
func TestVerify_ValidSignature(t *testing.T) {
	for name, signer := range signers(t) {
		t.Run(name, func(t *testing.T) {
			// Arrange
			pr, err := signer.Sign(baseRecord())
			require.NoError(t, err)

			// Act
			ok, err := signature.NewVerifier(&testutil.MockLogger{}).Verify(pr, signer.PEM)

			// Assert
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

// TestVerify_SignatureBitFlip 测试签名任一位翻转后验证失败
func TestVerify_SignatureBitFlip(t *testing.T) {
	for name, signer := range signers(t) {
		t.Run(name, func(t *testing.T) {
			pr, err := signer.Sign(baseRecord())
			require.NoError(t, err)

			for _, idx := range []int{0, 17, 31, 32, 48, 63} {
				tampered := pr
				tampered.Signature[idx] ^= 0x01

				ok, err := signature.Verify(tampered, signer.PEM)
				require.NoError(t, err)
				assert.False(t, ok, "byte %d", idx)
			}
		})
	}
}

// TestVerify_FieldChange 测试数值字段变化后验证失败
func TestVerify_FieldChange(t *testing.T) {
	for name, signer := range signers(t) {
		t.Run(name, func(t *testing.T) {
			pr, err := signer.Sign(baseRecord())
			require.NoError(t, err)

			mutations := map[string]func(*types.PricingRecord){
				"version":        func(r *types.PricingRecord) { r.Version++ },
				"spot":           func(r *types.PricingRecord) { r.Spot ^= 1 },
				"moving_average": func(r *types.PricingRecord) { r.MovingAverage ^= 1 << 40 },
				"timestamp":      func(r *types.PricingRecord) { r.Timestamp-- },
			}
			for field, mutate := range mutations {
				tampered := pr
				mutate(&tampered)

				ok, err := signature.Verify(tampered, signer.PEM)
				require.NoError(t, err)
				assert.False(t, ok, field)
			}
		})
	}
}

// TestVerify_WrongKey 测试其它公钥验证失败
func TestVerify_WrongKey(t *testing.T) {
	all := signers(t)
	other, err := testutil.NewP256Signer()
	require.NoError(t, err)

	pr, err := all["p256"].Sign(baseRecord())
	require.NoError(t, err)

	ok, err := signature.Verify(pr, other.PEM)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = signature.Verify(pr, all["secp256k1"].PEM)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestVerify_OutOfRangeScalars 测试 r、s 为零或全 0xff 时验证失败
func TestVerify_OutOfRangeScalars(t *testing.T) {
	for name, signer := range signers(t) {
		t.Run(name, func(t *testing.T) {
			pr := baseRecord()

			ok, err := signature.Verify(pr, signer.PEM)
			require.NoError(t, err)
			assert.False(t, ok, "zero signature")

			for i := range pr.Signature {
				pr.Signature[i] = 0xff
			}
			ok, err = signature.Verify(pr, signer.PEM)
			require.NoError(t, err)
			assert.False(t, ok, "overflowing signature")
		})
	}
}

// TestVerify_EmptyKey 测试空公钥
func TestVerify_EmptyKey(t *testing.T) {
	logger := testutil.NewRecordingLogger()

	for _, key := range []string{"", "   \n\t"} {
		ok, err := signature.NewVerifier(logger).Verify(baseRecord(), key)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, signature.ErrEmptyPublicKey))
	}
	assert.Equal(t, 2, logger.CountLevel("error"))
}

// TestVerify_MalformedKey 测试格式错误的公钥
func TestVerify_MalformedKey(t *testing.T) {
	signer, err := testutil.NewP256Signer()
	require.NoError(t, err)
	block, _ := pem.Decode([]byte(signer.PEM))
	require.NotNil(t, block)

	truncated := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: block.Bytes[:len(block.Bytes)-10]}))
	wrongType := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: block.Bytes}))

	cases := map[string]string{
		"not_pem":    "definitely not a key",
		"garbage":    "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n",
		"truncated":  truncated,
		"wrong_type": wrongType,
	}
	for name, key := range cases {
		t.Run(name, func(t *testing.T) {
			ok, err := signature.Verify(baseRecord(), key)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, signature.ErrMalformedPublicKey), "%v", err)
		})
	}
}

// TestVerify_UnsupportedKey 测试不支持的算法与曲线
func TestVerify_UnsupportedKey(t *testing.T) {
	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	edDER, err := x509.MarshalPKIXPublicKey(edPub)
	require.NoError(t, err)

	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	p384DER, err := x509.MarshalPKIXPublicKey(&p384.PublicKey)
	require.NoError(t, err)

	for name, der := range map[string][]byte{"ed25519": edDER, "p384": p384DER} {
		t.Run(name, func(t *testing.T) {
			key := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
			ok, err := signature.Verify(baseRecord(), key)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, signature.ErrUnsupportedKey), "%v", err)
		})
	}

	_, err = signature.EncodePublicKeyPEM(&p384.PublicKey)
	assert.True(t, errors.Is(err, signature.ErrUnsupportedKey))
}

// TestParsePublicKeyPEM_Algorithms 测试公钥解析与指纹
func TestParsePublicKeyPEM_Algorithms(t *testing.T) {
	for name, signer := range signers(t) {
		t.Run(name, func(t *testing.T) {
			key, err := signature.ParsePublicKeyPEM(signer.PEM)
			require.NoError(t, err)
			assert.Equal(t, signer.Algorithm, key.Algorithm())
			assert.Len(t, key.SerializeUncompressed(), 65)
			assert.Len(t, key.Fingerprint(), 64)

			again, err := signature.ParsePublicKeyPEM(signer.PEM)
			require.NoError(t, err)
			assert.Equal(t, key.Fingerprint(), again.Fingerprint())
		})
	}
}

// TestVerify_Concurrent 测试并发验证
func TestVerify_Concurrent(t *testing.T) {
	verifier := signature.NewVerifier(nil)

	for name, signer := range signers(t) {
		t.Run(name, func(t *testing.T) {
			good, err := signer.Sign(baseRecord())
			require.NoError(t, err)
			bad := good
			bad.Spot++

			var wg sync.WaitGroup
			results := make([]bool, 32)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					pr := good
					if i%2 == 1 {
						pr = bad
					}
					ok, err := verifier.Verify(pr, signer.PEM)
					results[i] = err == nil && ok
				}(i)
			}
			wg.Wait()

			for i, ok := range results {
				assert.Equal(t, i%2 == 0, ok, "goroutine %d", i)
			}
		})
	}
}
