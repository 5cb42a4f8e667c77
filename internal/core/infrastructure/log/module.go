package log

import (
	"fmt"

	"go.uber.org/fx"

	logconfig "github.com/weisyn/pricing/internal/config/log"
	"github.com/weisyn/pricing/pkg/interfaces/config"
	logInterface "github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
)

// ModuleParams 日志模块依赖
type ModuleParams struct {
	fx.In

	Provider config.Provider
}

// ModuleOutput 日志模块输出
type ModuleOutput struct {
	fx.Out

	Logger logInterface.Logger
}

// Module 返回日志模块
//
// 其它模块通过 NewModuleLogger 派生带 module 字段的子记录器：
// oracle、clock、event、replay。
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 按 log 配置段创建记录器
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.NewFromProvider(params.Provider))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建日志记录器失败: %w", err)
	}
	return ModuleOutput{Logger: logger}, nil
}

// NewModuleLogger 派生带 module 字段的记录器，baseLogger 为 nil 时返回 nil
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		return nil
	}
	return baseLogger.With("module", module)
}
