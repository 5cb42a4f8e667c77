package signature

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/weisyn/pricing/pkg/types"
)

// 公钥错误
var (
	// ErrEmptyPublicKey 未提供公钥（调用方前置条件错误）
	ErrEmptyPublicKey = errors.New("empty public key")

	// ErrMalformedPublicKey PEM 或 SPKI 结构无法解析
	ErrMalformedPublicKey = errors.New("malformed public key")

	// ErrUnsupportedKey 公钥算法或曲线不受支持
	ErrUnsupportedKey = errors.New("unsupported public key")
)

// pemBlockPublicKey SPKI 公钥的 PEM 块类型
const pemBlockPublicKey = "PUBLIC KEY"

// KeyAlgorithm 公钥算法标识
type KeyAlgorithm string

const (
	AlgorithmECDSAP256      KeyAlgorithm = "ecdsa-p256"
	AlgorithmECDSASecp256k1 KeyAlgorithm = "ecdsa-secp256k1"
)

var (
	oidPublicKeyECDSA      = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidNamedCurveP256      = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidNamedCurveSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

// subjectPublicKeyInfo RFC 5280 SPKI 结构
//
// x509 包不识别 secp256k1 曲线，因此先自行拆出算法标识再分派。
type subjectPublicKeyInfo struct {
	Algorithm pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

// PublicKey 已解析的受信公钥
type PublicKey struct {
	algorithm KeyAlgorithm
	p256      *ecdsa.PublicKey
	secp      *btcec.PublicKey
}

// Algorithm 返回公钥算法
func (k *PublicKey) Algorithm() KeyAlgorithm {
	return k.algorithm
}

// SerializeUncompressed 返回65字节未压缩点（0x04||X||Y）
func (k *PublicKey) SerializeUncompressed() []byte {
	switch k.algorithm {
	case AlgorithmECDSAP256:
		ecdhKey, err := k.p256.ECDH()
		if err != nil {
			return nil
		}
		return ecdhKey.Bytes()
	case AlgorithmECDSASecp256k1:
		return k.secp.SerializeUncompressed()
	default:
		return nil
	}
}

// Fingerprint 未压缩点的 SHA-256 十六进制指纹
func (k *PublicKey) Fingerprint() string {
	sum := sha256.Sum256(k.SerializeUncompressed())
	return hex.EncodeToString(sum[:])
}

// verifyDigest 验证 r||s 签名
//
// r、s 不在 [1, N-1] 区间时直接判定失败。
func (k *PublicKey) verifyDigest(digest []byte, sig types.PricingSignature) bool {
	half := types.PricingRecordSignatureSize / 2

	switch k.algorithm {
	case AlgorithmECDSAP256:
		r := new(big.Int).SetBytes(sig[:half])
		s := new(big.Int).SetBytes(sig[half:])
		return ecdsa.Verify(k.p256, digest, r, s)

	case AlgorithmECDSASecp256k1:
		var r, s secp256k1.ModNScalar
		if overflow := r.SetByteSlice(sig[:half]); overflow || r.IsZero() {
			return false
		}
		if overflow := s.SetByteSlice(sig[half:]); overflow || s.IsZero() {
			return false
		}
		return btcecdsa.NewSignature(&r, &s).Verify(digest, k.secp)

	default:
		return false
	}
}

// ParsePublicKeyPEM 解析 PEM 编码的 SPKI 公钥
//
// 支持：
// - ECDSA P-256（id-ecPublicKey + prime256v1）
// - ECDSA secp256k1（id-ecPublicKey + 1.3.132.0.10）
//
// 返回错误：
// - ErrEmptyPublicKey：输入为空或全空白
// - ErrMalformedPublicKey：非 PEM、块类型不是 PUBLIC KEY、DER 或曲线点无效
// - ErrUnsupportedKey：非 ECDSA 算法或其它曲线
func ParsePublicKeyPEM(pemText string) (*PublicKey, error) {
	if strings.TrimSpace(pemText) == "" {
		return nil, ErrEmptyPublicKey
	}

	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrMalformedPublicKey)
	}
	if block.Type != pemBlockPublicKey {
		return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrMalformedPublicKey, block.Type)
	}

	var spki subjectPublicKeyInfo
	rest, err := asn1.Unmarshal(block.Bytes, &spki)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing data after SPKI", ErrMalformedPublicKey)
	}

	if !spki.Algorithm.Algorithm.Equal(oidPublicKeyECDSA) {
		return nil, fmt.Errorf("%w: algorithm %s", ErrUnsupportedKey, spki.Algorithm.Algorithm)
	}

	var curve asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(spki.Algorithm.Parameters.FullBytes, &curve); err != nil {
		return nil, fmt.Errorf("%w: named curve: %v", ErrMalformedPublicKey, err)
	}

	switch {
	case curve.Equal(oidNamedCurveP256):
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
		}
		ecPub, ok := pub.(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected key type %T", ErrMalformedPublicKey, pub)
		}
		return &PublicKey{algorithm: AlgorithmECDSAP256, p256: ecPub}, nil

	case curve.Equal(oidNamedCurveSecp256k1):
		pub, err := btcec.ParsePubKey(spki.PublicKey.RightAlign())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
		}
		return &PublicKey{algorithm: AlgorithmECDSASecp256k1, secp: pub}, nil

	default:
		return nil, fmt.Errorf("%w: curve %s", ErrUnsupportedKey, curve)
	}
}

// EncodePublicKeyPEM 将 ECDSA 公钥编码为 PEM SPKI
//
// 仅支持 P-256 与 secp256k1。
func EncodePublicKeyPEM(pub *ecdsa.PublicKey) (string, error) {
	if pub == nil || pub.Curve == nil {
		return "", ErrEmptyPublicKey
	}

	var der []byte
	switch pub.Curve.Params().Name {
	case elliptic.P256().Params().Name:
		var err error
		der, err = x509.MarshalPKIXPublicKey(pub)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
		}

	case btcec.S256().Params().Name:
		if pub.X == nil || pub.Y == nil || pub.X.BitLen() > 256 || pub.Y.BitLen() > 256 {
			return "", fmt.Errorf("%w: coordinates out of range", ErrMalformedPublicKey)
		}
		point := make([]byte, 65)
		point[0] = 0x04
		pub.X.FillBytes(point[1:33])
		pub.Y.FillBytes(point[33:65])
		if _, err := btcec.ParsePubKey(point); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
		}

		params, err := asn1.Marshal(oidNamedCurveSecp256k1)
		if err != nil {
			return "", err
		}
		der, err = asn1.Marshal(subjectPublicKeyInfo{
			Algorithm: pkix.AlgorithmIdentifier{
				Algorithm:  oidPublicKeyECDSA,
				Parameters: asn1.RawValue{FullBytes: params},
			},
			PublicKey: asn1.BitString{Bytes: point, BitLength: len(point) * 8},
		})
		if err != nil {
			return "", err
		}

	default:
		return "", fmt.Errorf("%w: curve %s", ErrUnsupportedKey, pub.Curve.Params().Name)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: pemBlockPublicKey, Bytes: der})), nil
}
