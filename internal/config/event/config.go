// Package event 提供事件系统配置
package event

import (
	configtypes "github.com/weisyn/pricing/pkg/types"
)

// EventOptions 事件系统配置选项
type EventOptions struct {
	Enabled     bool `json:"enabled"`      // 是否启用事件系统
	HistorySize int  `json:"history_size"` // 每类事件保留的最近事件数
}

// Config 事件配置实现
type Config struct {
	options *EventOptions
}

// New 创建事件配置
func New(userConfig interface{}) *Config {
	options := &EventOptions{
		Enabled:     defaultEnabled,
		HistorySize: defaultHistorySize,
	}

	if eventConfig, ok := userConfig.(*configtypes.UserEventConfig); ok && eventConfig != nil {
		if eventConfig.Enabled != nil {
			options.Enabled = *eventConfig.Enabled
		}
		if eventConfig.HistorySize != nil && *eventConfig.HistorySize >= 0 {
			options.HistorySize = *eventConfig.HistorySize
		}
	}

	return &Config{options: options}
}

// NewFromOptions 直接包装已有选项
func NewFromOptions(options *EventOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// IsEnabled 是否启用事件系统
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetHistorySize 获取事件历史容量
func (c *Config) GetHistorySize() int {
	return c.options.HistorySize
}
