package app

import (
	"github.com/weisyn/pricing/pkg/interfaces/config"
	"github.com/weisyn/pricing/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径（为空时读取环境变量 PRICING_CONFIG_PATH）
	configFilePath string

	// 直接提供的用户配置（优先级高于配置文件）
	appConfig *types.AppConfig

	// 命令行指定的网络，覆盖配置文件
	network string
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接提供用户配置，跳过文件加载
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithNetwork 覆盖配置中的网络类型
func WithNetwork(network string) Option {
	return func(o *options) {
		o.network = network
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
