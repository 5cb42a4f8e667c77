package config

import (
	"strings"

	"github.com/weisyn/pricing/internal/config/clock"
	"github.com/weisyn/pricing/internal/config/event"
	"github.com/weisyn/pricing/internal/config/log"
	"github.com/weisyn/pricing/internal/config/metrics"
	"github.com/weisyn/pricing/internal/config/oracle"
	"github.com/weisyn/pricing/pkg/interfaces/config"
	"github.com/weisyn/pricing/pkg/types"
)

const (
	defaultAppName     = "pricingctl"
	defaultEnvironment = "prod"
	defaultNetwork     = types.NetworkMainnet
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && strings.TrimSpace(*p.appConfig.AppName) != "" {
		return strings.TrimSpace(*p.appConfig.AppName)
	}
	return defaultAppName
}

// GetEnvironment 获取运行环境
func (p *Provider) GetEnvironment() string {
	if p.appConfig.Environment == nil {
		return defaultEnvironment
	}
	switch env := strings.ToLower(strings.TrimSpace(*p.appConfig.Environment)); env {
	case "dev", "test", "prod":
		return env
	default:
		return defaultEnvironment
	}
}

// GetNetwork 获取网络类型
//
// 未配置或无法识别时回退 mainnet；无法识别的值由 ValidateAppConfig 报告。
func (p *Provider) GetNetwork() types.NetworkType {
	if p.appConfig.Network == nil {
		return defaultNetwork
	}
	network, err := types.ParseNetworkType(*p.appConfig.Network)
	if err != nil {
		return defaultNetwork
	}
	return network
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	// 直接传递用户日志配置给log.New，让它处理默认值和转换
	return log.New(p.appConfig.Log).GetOptions()
}

// GetOracle 获取预言机配置
func (p *Provider) GetOracle() *oracle.OracleOptions {
	return oracle.New(p.appConfig.Oracle).GetOptions()
}

// GetMetrics 获取指标配置
func (p *Provider) GetMetrics() *metrics.MetricsOptions {
	return metrics.New(p.appConfig.Metrics).GetOptions()
}

// GetEvent 获取事件配置
func (p *Provider) GetEvent() *event.EventOptions {
	return event.New(p.appConfig.Event).GetOptions()
}

// GetClock 获取时钟配置
func (p *Provider) GetClock() *clock.ClockOptions {
	return clock.New(p.appConfig.Clock).GetOptions()
}

// GetAppConfig 获取原始用户配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}
