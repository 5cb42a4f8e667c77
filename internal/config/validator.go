package config

import (
	"fmt"

	"github.com/weisyn/pricing/internal/config/clock"
	logconfig "github.com/weisyn/pricing/internal/config/log"
	"github.com/weisyn/pricing/internal/config/oracle"
	"github.com/weisyn/pricing/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidationErrors 多个验证错误
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	msg := "配置验证失败，发现以下问题：\n"
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap 返回全部验证错误
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// ValidateAppConfig 在启动时验证配置
//
// 📋 **检查项**：
// - network：必须是已知网络类型
// - log.level：必须是已知日志级别
// - oracle.trusted_keys：网络名可识别，且不存在仅大小写不同的重复网络名
// - clock.source：system 或 ntp
//
// 公钥内容由 oracle 模块在装配时解析校验。未配置任何受信公钥不算错误：
// 此时所有非空记录都会因签名无法验证而被拒绝。
func ValidateAppConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}
	var errs []error

	if appConfig.Network != nil {
		if _, err := types.ParseNetworkType(*appConfig.Network); err != nil {
			errs = append(errs, &ValidationError{Field: "network", Message: err.Error()})
		}
	}

	if appConfig.Log != nil && appConfig.Log.Level != nil {
		level := logconfig.New(appConfig.Log).GetLevel()
		if !logconfig.IsKnownLevel(level) {
			errs = append(errs, &ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("未知日志级别: %q", *appConfig.Log.Level),
			})
		}
	}

	if appConfig.Oracle != nil {
		options := oracle.New(appConfig.Oracle).GetOptions()
		for _, name := range options.InvalidNetworks {
			errs = append(errs, &ValidationError{
				Field:   "oracle.trusted_keys." + name,
				Message: fmt.Sprintf("未知网络类型: %q", name),
			})
		}
		for _, name := range options.DuplicateNetworks {
			errs = append(errs, &ValidationError{
				Field:   "oracle.trusted_keys." + name,
				Message: fmt.Sprintf("网络名重复（大小写不同的同一网络）: %q", name),
			})
		}
	}

	if appConfig.Clock != nil {
		source := clock.New(appConfig.Clock).GetOptions().Source
		if !clock.IsKnownSource(source) {
			errs = append(errs, &ValidationError{
				Field:   "clock.source",
				Message: fmt.Sprintf("未知时钟来源: %q", source),
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
