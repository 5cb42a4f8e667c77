package signature

import (
	"crypto/sha256"

	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/pricing/pkg/types"
)

// Verifier 定价记录签名验证器
//
// 只持有可选的日志记录器，可并发使用。
type Verifier struct {
	logger log.Logger
}

// NewVerifier 创建签名验证器，logger 可为 nil
func NewVerifier(logger log.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// Verify 使用 PEM 公钥验证记录签名
//
// 公钥每次调用重新解析。返回：
// - (true, nil)：签名有效
// - (false, nil)：签名不匹配
// - (false, err)：公钥为空、格式错误或算法不受支持
func (v *Verifier) Verify(record types.PricingRecord, publicKeyPEM string) (bool, error) {
	key, err := ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		if v.logger != nil {
			v.logger.Errorf("❌ 定价记录公钥不可用: %v", err)
		}
		return false, err
	}
	return v.VerifyWithKey(record, key), nil
}

// VerifyWithKey 使用已解析的公钥验证记录签名
func (v *Verifier) VerifyWithKey(record types.PricingRecord, key *PublicKey) bool {
	if key == nil {
		return false
	}

	digest := sha256.Sum256(BuildMessage(record))
	ok := key.verifyDigest(digest[:], record.Signature)
	if !ok && v.logger != nil {
		v.logger.Debugf("定价记录签名不匹配: algorithm=%s version=%d spot=%d moving_average=%d timestamp=%d",
			key.Algorithm(), record.Version, record.Spot, record.MovingAverage, record.Timestamp)
	}
	return ok
}

// Verify 不带日志的便捷验证
func Verify(record types.PricingRecord, publicKeyPEM string) (bool, error) {
	return NewVerifier(nil).Verify(record, publicKeyPEM)
}
