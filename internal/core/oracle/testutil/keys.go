package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/weisyn/pricing/internal/core/oracle/signature"
	"github.com/weisyn/pricing/pkg/types"
)

// ==================== 测试签名方 ====================

// Signer 测试用的定价记录发布方
type Signer struct {
	Algorithm signature.KeyAlgorithm
	PEM       string // SPKI 公钥

	p256 *ecdsa.PrivateKey
	secp *btcec.PrivateKey
}

// NewP256Signer 生成 P-256 测试密钥
func NewP256Signer() (*Signer, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("生成P-256密钥失败: %w", err)
	}
	pemText, err := signature.EncodePublicKeyPEM(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Signer{Algorithm: signature.AlgorithmECDSAP256, PEM: pemText, p256: priv}, nil
}

// NewSecp256k1Signer 生成 secp256k1 测试密钥
func NewSecp256k1Signer() (*Signer, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("生成secp256k1密钥失败: %w", err)
	}
	pemText, err := signature.EncodePublicKeyPEM(priv.PubKey().ToECDSA())
	if err != nil {
		return nil, err
	}
	return &Signer{Algorithm: signature.AlgorithmECDSASecp256k1, PEM: pemText, secp: priv}, nil
}

// SignatureFor 对记录的数值字段签名，返回 r||s
func (s *Signer) SignatureFor(record types.PricingRecord) (types.PricingSignature, error) {
	var sig types.PricingSignature
	digest := sha256.Sum256(signature.BuildMessage(record))

	switch {
	case s.p256 != nil:
		r, sv, err := ecdsa.Sign(rand.Reader, s.p256, digest[:])
		if err != nil {
			return sig, fmt.Errorf("P-256签名失败: %w", err)
		}
		r.FillBytes(sig[:32])
		sv.FillBytes(sig[32:])

	case s.secp != nil:
		// 紧凑签名格式：header(1) || r(32) || s(32)
		compact := btcecdsa.SignCompact(s.secp, digest[:], false)
		copy(sig[:], compact[1:65])

	default:
		return sig, fmt.Errorf("signer has no private key")
	}
	return sig, nil
}

// Sign 返回带签名的记录副本
func (s *Signer) Sign(record types.PricingRecord) (types.PricingRecord, error) {
	sig, err := s.SignatureFor(record)
	if err != nil {
		return types.PricingRecord{}, err
	}
	record.Signature = sig
	return record, nil
}

// MustSign 签名失败时 panic，仅用于表驱动测试数据构造
func (s *Signer) MustSign(record types.PricingRecord) types.PricingRecord {
	signed, err := s.Sign(record)
	if err != nil {
		panic(err)
	}
	return signed
}
