// Package metrics 提供 Prometheus 指标配置
package metrics

import (
	configtypes "github.com/weisyn/pricing/pkg/types"
)

// defaultEnabled 默认启用指标
const defaultEnabled = true

// MetricsOptions 指标配置选项
type MetricsOptions struct {
	Enabled bool `json:"enabled"` // 是否记录 Prometheus 指标
}

// Config 指标配置实现
type Config struct {
	options *MetricsOptions
}

// New 创建指标配置
func New(userConfig interface{}) *Config {
	options := &MetricsOptions{Enabled: defaultEnabled}

	if metricsConfig, ok := userConfig.(*configtypes.UserMetricsConfig); ok && metricsConfig != nil {
		if metricsConfig.Enabled != nil {
			options.Enabled = *metricsConfig.Enabled
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *MetricsOptions {
	return c.options
}

// IsEnabled 是否启用指标
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}
