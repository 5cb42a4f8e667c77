package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/pricing/internal/core/oracle/signature"
	"github.com/weisyn/pricing/pkg/types"
)

// TestSigner_SignaturesVerify 测试两种曲线的测试签名都能通过验证
func TestSigner_SignaturesVerify(t *testing.T) {
	constructors := map[string]func() (*Signer, error){
		"p256":      NewP256Signer,
		"secp256k1": NewSecp256k1Signer,
	}

	for name, newSigner := range constructors {
		t.Run(name, func(t *testing.T) {
			signer, err := newSigner()
			require.NoError(t, err)

			record, err := signer.Sign(types.PricingRecord{
				Version:       1,
				Spot:          8_100_000_000,
				MovingAverage: 8_050_000_000,
				Timestamp:     1_700_000_000,
			})
			require.NoError(t, err)
			assert.NotEqual(t, types.PricingSignature{}, record.Signature)

			ok, err := signature.NewVerifier(nil).Verify(record, signer.PEM)
			require.NoError(t, err)
			assert.True(t, ok)

			record.Spot++
			ok, err = signature.NewVerifier(nil).Verify(record, signer.PEM)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}
