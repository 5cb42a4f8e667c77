package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"

	config "github.com/weisyn/pricing/internal/config"
	"github.com/weisyn/pricing/internal/core/infrastructure/clock"
	"github.com/weisyn/pricing/internal/core/infrastructure/event"
	log "github.com/weisyn/pricing/internal/core/infrastructure/log"
	"github.com/weisyn/pricing/internal/core/infrastructure/metrics"
	"github.com/weisyn/pricing/internal/core/oracle"
	configif "github.com/weisyn/pricing/pkg/interfaces/config"
	"github.com/weisyn/pricing/pkg/types"
)

// ConfigPathEnv 配置文件路径环境变量
const ConfigPathEnv = "PRICING_CONFIG_PATH"

// startTimeout 启动超时
const startTimeout = 30 * time.Second

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts     *options
	fxApp    *fx.App
	services Services
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// resolveAppConfig 确定最终用户配置
//
// 优先级：WithAppConfig > WithConfigFile > 环境变量 > 默认配置。
// 明确指定的配置文件无法加载时返回错误。
func (b *Bootstrap) resolveAppConfig() error {
	if b.opts.appConfig == nil {
		path := b.opts.configFilePath
		if path == "" {
			path = os.Getenv(ConfigPathEnv)
		}
		if path != "" {
			appConfig, err := config.LoadAppConfig(path)
			if err != nil {
				return err
			}
			b.opts.appConfig = appConfig
		} else {
			b.opts.appConfig = &types.AppConfig{}
		}
	}

	if b.opts.network != "" {
		network := b.opts.network
		b.opts.appConfig.Network = &network
	}
	return nil
}

// SetupModules 按依赖顺序设置所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configif.AppOptions { return b.opts }),

		// 基础设施层
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		metrics.Module(), // 3. 指标(依赖配置)
		clock.Module(),   // 4. 时钟(依赖配置、日志和指标开关)
		event.Module(),   // 5. 事件(依赖配置和日志)

		// 业务层
		oracle.Module(), // 6. 定价记录准入(依赖以上全部)
	}
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() error {
	if err := b.resolveAppConfig(); err != nil {
		return err
	}

	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
		fx.Populate(
			&b.services.Provider,
			&b.services.OracleConfig,
			&b.services.Logger,
			&b.services.Policy,
			&b.services.Verifier,
			&b.services.EventBus,
			&b.services.Clock,
		),
	)
	return b.fxApp.Err()
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// BootstrapApp 执行完整的引导过程并返回应用实例
func BootstrapApp(opts ...Option) (App, error) {
	bootstrap := NewBootstrap(newOptions(opts...))

	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	if err := bootstrap.StartApp(startupCtx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}
