package clock

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	clockconfig "github.com/weisyn/pricing/internal/config/clock"
	logmodule "github.com/weisyn/pricing/internal/core/infrastructure/log"
	"github.com/weisyn/pricing/pkg/interfaces/config"
	infraClock "github.com/weisyn/pricing/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
)

// ModuleInput 时钟模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider
	Logger   log.Logger `optional:"true"`
}

// Module 返回时钟模块
//
// 提供：
// - clock.Clock: 按配置选择系统时钟或 NTP 校正时钟
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(ProvideClock),
	)
}

// ProvideClock 按配置创建时钟
func ProvideClock(input ModuleInput) (infraClock.Clock, error) {
	options := input.Provider.GetClock()

	switch options.Source {
	case clockconfig.SourceSystem:
		return NewSystemClock(), nil

	case clockconfig.SourceNTP:
		c := NewNTPClock(options)
		logger := logmodule.NewModuleLogger(input.Logger, "clock")
		if ok, offset, _, err := c.Health(); !ok && logger != nil {
			logger.Warnf("NTP时钟不健康: server=%s offset=%s err=%v", options.NTPServer, offset, err)
		}

		if input.Provider.GetMetrics().Enabled {
			err := RegisterClockMetrics(nil, c.Health)
			var already prometheus.AlreadyRegisteredError
			if err != nil && !errors.As(err, &already) {
				return nil, fmt.Errorf("注册时钟指标失败: %w", err)
			}
		}
		return c, nil

	default:
		return nil, fmt.Errorf("未知时钟来源: %q", options.Source)
	}
}
