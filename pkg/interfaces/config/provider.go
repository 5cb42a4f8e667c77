// Package config provides configuration provider interfaces.
package config

import (
	clockconfig "github.com/weisyn/pricing/internal/config/clock"
	eventconfig "github.com/weisyn/pricing/internal/config/event"
	logconfig "github.com/weisyn/pricing/internal/config/log"
	metricsconfig "github.com/weisyn/pricing/internal/config/metrics"
	oracleconfig "github.com/weisyn/pricing/internal/config/oracle"
	"github.com/weisyn/pricing/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAppName 获取应用名称
	GetAppName() string

	// GetEnvironment 获取运行环境
	// 返回 dev | test | prod，未配置或无效时为 "prod"
	GetEnvironment() string

	// GetNetwork 获取本节点所在网络，未配置时为 mainnet
	GetNetwork() types.NetworkType

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetOracle 获取预言机定价记录配置
	GetOracle() *oracleconfig.OracleOptions

	// GetMetrics 获取指标配置
	GetMetrics() *metricsconfig.MetricsOptions

	// GetEvent 获取事件配置
	GetEvent() *eventconfig.EventOptions

	// GetClock 获取本地时钟配置
	GetClock() *clockconfig.ClockOptions

	// GetAppConfig 获取原始用户配置
	GetAppConfig() *types.AppConfig
}
