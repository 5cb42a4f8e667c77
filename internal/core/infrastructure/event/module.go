// Package event 提供事件管理功能
package event

import (
	"go.uber.org/fx"

	eventconfig "github.com/weisyn/pricing/internal/config/event"
	logmodule "github.com/weisyn/pricing/internal/core/infrastructure/log"
	"github.com/weisyn/pricing/pkg/interfaces/config"
	eventInterface "github.com/weisyn/pricing/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider // 配置提供者
	Logger   log.Logger      `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus  eventInterface.EventBus // 基础事件总线
	Publisher *VerdictPublisher       // 准入结论发布器
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(
			func(input ModuleInput) ModuleOutput {
				cfg := eventconfig.NewFromOptions(input.Provider.GetEvent())
				bus := New(cfg)

				if logger := logmodule.NewModuleLogger(input.Logger, "event"); logger != nil {
					logger.Debugf("事件总线已创建: enabled=%t, history=%d",
						cfg.IsEnabled(), cfg.GetHistorySize())
				}

				return ModuleOutput{
					EventBus:  bus,
					Publisher: NewVerdictPublisher(bus),
				}
			},
		),
	)
}
