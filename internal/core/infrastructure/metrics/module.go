package metrics

import (
	"go.uber.org/fx"

	"github.com/weisyn/pricing/pkg/interfaces/config"
)

// ModuleInput 指标模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider
}

// Module 返回 metrics 模块
//
// 提供：
// - *VerdictRecorder: 准入结论指标记录器
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(func(input ModuleInput) *VerdictRecorder {
			return NewVerdictRecorder(input.Provider.GetMetrics().Enabled)
		}),
	)
}
