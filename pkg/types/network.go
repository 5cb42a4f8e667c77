package types

import (
	"fmt"
	"strings"
)

// NetworkType 网络类型
//
// 每种网络类型对应一把独立配置的预言机可信公钥。
type NetworkType string

const (
	NetworkMainnet   NetworkType = "mainnet"
	NetworkTestnet   NetworkType = "testnet"
	NetworkStagenet  NetworkType = "stagenet"
	NetworkFakechain NetworkType = "fakechain" // 本地回归测试链
)

// KnownNetworkTypes 全部已知网络类型
func KnownNetworkTypes() []NetworkType {
	return []NetworkType{NetworkMainnet, NetworkTestnet, NetworkStagenet, NetworkFakechain}
}

// ParseNetworkType 解析网络类型（大小写不敏感）
func ParseNetworkType(s string) (NetworkType, error) {
	n := NetworkType(strings.ToLower(strings.TrimSpace(s)))
	if !n.IsValid() {
		return "", fmt.Errorf("未知网络类型: %q", s)
	}
	return n, nil
}

// IsValid 是否为已知网络类型
func (n NetworkType) IsValid() bool {
	switch n {
	case NetworkMainnet, NetworkTestnet, NetworkStagenet, NetworkFakechain:
		return true
	default:
		return false
	}
}

// String 实现 fmt.Stringer
func (n NetworkType) String() string {
	return string(n)
}
