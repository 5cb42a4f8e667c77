// Package app 装配 pricingctl 使用的依赖注入容器
package app

import (
	"context"
	"time"

	oracleconfig "github.com/weisyn/pricing/internal/config/oracle"
	"github.com/weisyn/pricing/internal/core/oracle/policy"
	"github.com/weisyn/pricing/internal/core/oracle/signature"
	"github.com/weisyn/pricing/pkg/interfaces/config"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
)

// stopTimeout 停止超时
const stopTimeout = 10 * time.Second

// Services 装配完成的核心服务
type Services struct {
	Provider     config.Provider
	OracleConfig *oracleconfig.Config
	Logger       log.Logger
	Policy       *policy.Service
	Verifier     *signature.Verifier
	EventBus     event.EventBus
	Clock        clock.Clock
}

// App 应用对外接口
type App interface {
	// Services 返回已装配的服务
	Services() *Services

	// Stop 停止应用并刷新日志
	Stop() error
}

// internalApp 应用内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

// Services 返回已装配的服务
func (a *internalApp) Services() *Services {
	return &a.bootstrap.services
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	err := a.bootstrap.StopApp(ctx)
	if logger := a.bootstrap.services.Logger; logger != nil {
		_ = logger.Sync()
	}
	return err
}

// Start 启动应用
func Start(opts ...Option) (App, error) {
	return BootstrapApp(opts...)
}
