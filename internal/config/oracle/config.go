// Package oracle 提供预言机定价记录的配置
package oracle

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/weisyn/pricing/pkg/types"
)

// ErrTrustedKeyNotConfigured 指定网络未配置受信公钥
var ErrTrustedKeyNotConfigured = errors.New("trusted key not configured")

// OracleOptions 预言机配置选项
type OracleOptions struct {
	ActivationVersion    uint32                       `json:"activation_version"`      // 激活协议版本
	MaxFutureSkewSeconds uint64                       `json:"max_future_skew_seconds"` // 最大未来偏移（秒）
	TrustedKeys          map[types.NetworkType]string `json:"trusted_keys"`            // 各网络受信公钥（PEM）

	// InvalidNetworks 配置中出现但无法识别的网络名（由配置校验报告）
	InvalidNetworks []string `json:"-"`

	// DuplicateNetworks 与已出现的名称指向同一网络的配置名（如 Mainnet 与 mainnet）
	DuplicateNetworks []string `json:"-"`
}

// Config 预言机配置实现
type Config struct {
	options *OracleOptions
}

// New 创建预言机配置
//
// userConfig 为 *types.UserOracleConfig；trusted_key_files 应已由配置加载器读入 trusted_keys。
func New(userConfig interface{}) *Config {
	options := createDefaultOracleOptions()
	if userConfig != nil {
		applyUserOracleConfig(options, userConfig)
	}
	return &Config{options: options}
}

// NewFromOptions 直接包装已有选项
func NewFromOptions(options *OracleOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// createDefaultOracleOptions 创建默认配置
func createDefaultOracleOptions() *OracleOptions {
	return &OracleOptions{
		ActivationVersion:    defaultActivationVersion,
		MaxFutureSkewSeconds: defaultMaxFutureSkewSeconds,
		TrustedKeys:          make(map[types.NetworkType]string),
	}
}

// applyUserOracleConfig 应用用户配置覆盖默认值
func applyUserOracleConfig(options *OracleOptions, userConfig interface{}) {
	oracleConfig, ok := userConfig.(*types.UserOracleConfig)
	if !ok || oracleConfig == nil {
		return
	}

	if oracleConfig.ActivationVersion != nil {
		options.ActivationVersion = *oracleConfig.ActivationVersion
	}
	if oracleConfig.MaxFutureSkewSeconds != nil {
		options.MaxFutureSkewSeconds = *oracleConfig.MaxFutureSkewSeconds
	}

	// 按名称排序遍历，大小写不同的重复项中排序靠前者生效
	names := make([]string, 0, len(oracleConfig.TrustedKeys))
	for name := range oracleConfig.TrustedKeys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		network, err := types.ParseNetworkType(name)
		if err != nil {
			options.InvalidNetworks = append(options.InvalidNetworks, name)
			continue
		}
		if _, exists := options.TrustedKeys[network]; exists {
			options.DuplicateNetworks = append(options.DuplicateNetworks, name)
			continue
		}
		options.TrustedKeys[network] = oracleConfig.TrustedKeys[name]
	}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *OracleOptions {
	return c.options
}

// GetActivationVersion 获取激活协议版本
func (c *Config) GetActivationVersion() uint32 {
	return c.options.ActivationVersion
}

// GetMaxFutureSkewSeconds 获取最大未来偏移
func (c *Config) GetMaxFutureSkewSeconds() uint64 {
	return c.options.MaxFutureSkewSeconds
}

// ConfiguredNetworks 返回已配置受信公钥的网络（有序）
func (c *Config) ConfiguredNetworks() []types.NetworkType {
	networks := make([]types.NetworkType, 0, len(c.options.TrustedKeys))
	for n := range c.options.TrustedKeys {
		networks = append(networks, n)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i] < networks[j] })
	return networks
}

// TrustedKey 返回指定网络的受信公钥（实现 oracle.TrustedKeyResolver）
//
// 未配置时返回 ErrTrustedKeyNotConfigured；已配置但为空白时原样返回，
// 由签名验证器报告空公钥。
func (c *Config) TrustedKey(network types.NetworkType) (string, error) {
	key, ok := c.options.TrustedKeys[network]
	if !ok {
		return "", fmt.Errorf("%w: network %s", ErrTrustedKeyNotConfigured, network)
	}
	return strings.TrimSpace(key), nil
}
