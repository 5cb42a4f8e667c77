package clock

import (
	"os"
	"strings"
	"time"

	"github.com/weisyn/pricing/pkg/types"
)

// 环境变量覆盖
const (
	envClockSource = "PRICING_CLOCK_SOURCE"
	envNTPServer   = "PRICING_NTP_SERVER"
)

// ClockOptions 时钟配置
type ClockOptions struct {
	Source          string        `json:"source"` // system | ntp
	NTPServer       string        `json:"ntp_server"`
	SyncInterval    time.Duration `json:"sync_interval"`
	OffsetThreshold time.Duration `json:"offset_threshold"` // 判定不健康的偏移阈值

	// 同步失败后的退避
	BackoffInitial time.Duration `json:"backoff_initial"`
	BackoffMax     time.Duration `json:"backoff_max"`
}

// Config 提供访问选项
type Config struct {
	options *ClockOptions
}

// New 创建时钟配置
//
// 优先级：环境变量 > 用户配置 > 默认值。
// 环境变量：
//
//	PRICING_CLOCK_SOURCE (system|ntp)
//	PRICING_NTP_SERVER (如 time.google.com)
func New(userConfig interface{}) *Config {
	opts := &ClockOptions{
		Source:          defaultSource,
		NTPServer:       defaultNTPServer,
		SyncInterval:    defaultSyncInterval,
		OffsetThreshold: defaultOffsetThreshold,
		BackoffInitial:  defaultBackoffInitial,
		BackoffMax:      defaultBackoffMax,
	}

	if clockConfig, ok := userConfig.(*types.UserClockConfig); ok && clockConfig != nil {
		if clockConfig.Source != nil {
			opts.Source = *clockConfig.Source
		}
		if clockConfig.NTPServer != nil && strings.TrimSpace(*clockConfig.NTPServer) != "" {
			opts.NTPServer = strings.TrimSpace(*clockConfig.NTPServer)
		}
		if clockConfig.SyncIntervalSeconds != nil && *clockConfig.SyncIntervalSeconds > 0 {
			opts.SyncInterval = time.Duration(*clockConfig.SyncIntervalSeconds) * time.Second
		}
		if clockConfig.OffsetThresholdMillis != nil {
			opts.OffsetThreshold = time.Duration(*clockConfig.OffsetThresholdMillis) * time.Millisecond
		}
	}

	if v := os.Getenv(envClockSource); v != "" {
		opts.Source = v
	}
	if v := os.Getenv(envNTPServer); v != "" {
		opts.NTPServer = v
	}
	opts.Source = strings.ToLower(strings.TrimSpace(opts.Source))

	return &Config{options: opts}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *ClockOptions { return c.options }

// IsKnownSource 是否为受支持的时钟来源
func IsKnownSource(source string) bool {
	return source == SourceSystem || source == SourceNTP
}
