// Package oracle 装配预言机定价记录准入组件
//
// 🎯 **提供的服务**：
// - *signature.Verifier / oracle.SignatureVerifier：签名验证
// - *policy.Service / oracle.AdmissibilityPolicy：准入策略
//
// 受信公钥由配置模块提供（*oracleconfig.Config 实现 TrustedKeyResolver），
// 指标记录器与事件发布器作为结论观察者挂载，缺省时不挂载。
package oracle

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"

	oracleconfig "github.com/weisyn/pricing/internal/config/oracle"
	"github.com/weisyn/pricing/internal/core/infrastructure/event"
	logmodule "github.com/weisyn/pricing/internal/core/infrastructure/log"
	"github.com/weisyn/pricing/internal/core/infrastructure/metrics"
	"github.com/weisyn/pricing/internal/core/oracle/policy"
	"github.com/weisyn/pricing/internal/core/oracle/signature"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
	oracleif "github.com/weisyn/pricing/pkg/interfaces/oracle"
)

// ErrUnusableTrustedKey 配置的受信公钥无法解析为受支持的公钥
var ErrUnusableTrustedKey = errors.New("unusable trusted key")

// ModuleInput 预言机模块输入依赖
type ModuleInput struct {
	fx.In

	Config    *oracleconfig.Config
	Logger    log.Logger               `optional:"true"`
	Recorder  *metrics.VerdictRecorder `optional:"true"`
	Publisher *event.VerdictPublisher  `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 预言机模块输出服务
type ModuleOutput struct {
	fx.Out

	Verifier            *signature.Verifier
	SignatureVerifier   oracleif.SignatureVerifier
	Policy              *policy.Service
	AdmissibilityPolicy oracleif.AdmissibilityPolicy
}

// Module 返回预言机模块
func Module() fx.Option {
	return fx.Module("oracle",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建签名验证器与准入策略
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	if err := CheckTrustedKeys(input.Config); err != nil {
		return ModuleOutput{}, err
	}

	logger := logmodule.NewModuleLogger(input.Logger, "oracle")
	verifier := signature.NewVerifier(logger)

	var observers []oracleif.VerdictObserver
	if input.Recorder != nil {
		observers = append(observers, input.Recorder)
	}
	if input.Publisher != nil {
		observers = append(observers, input.Publisher)
	}

	service, err := policy.NewService(
		policy.Options{
			ActivationVersion:    input.Config.GetActivationVersion(),
			MaxFutureSkewSeconds: input.Config.GetMaxFutureSkewSeconds(),
		},
		input.Config,
		verifier,
		logger,
		observers...,
	)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建准入策略失败: %w", err)
	}

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if logger != nil {
				logger.Infof("预言机准入策略已就绪: activation_version=%d, max_future_skew=%ds, networks=%v",
					input.Config.GetActivationVersion(),
					input.Config.GetMaxFutureSkewSeconds(),
					input.Config.ConfiguredNetworks())
			}
			return nil
		},
	})

	return ModuleOutput{
		Verifier:            verifier,
		SignatureVerifier:   verifier,
		Policy:              service,
		AdmissibilityPolicy: service,
	}, nil
}

// CheckTrustedKeys 逐网络解析已配置的受信公钥
//
// 所有不可用的公钥一并报告，错误匹配 ErrUnusableTrustedKey。
func CheckTrustedKeys(cfg *oracleconfig.Config) error {
	var errs []error
	for _, network := range cfg.ConfiguredNetworks() {
		key, err := cfg.TrustedKey(network)
		if err == nil {
			_, err = signature.ParsePublicKeyPEM(key)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: oracle.trusted_keys.%s: %v", ErrUnusableTrustedKey, network, err))
		}
	}
	return errors.Join(errs...)
}
