// Package log 定义 pricingctl 的日志配置
//
// 诊断日志默认写标准错误（控制台编码），配置 file_path 后改写 JSON 文件并按大小轮转，
// 命令结果独占标准输出。
package log

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/weisyn/pricing/pkg/types"
)

// LogOptions 日志配置选项
type LogOptions struct {
	Level     string `json:"level"`      // debug | info | warn | error | fatal
	ToConsole bool   `json:"to_console"` // 写标准错误
	FilePath  string `json:"file_path"`  // 为空时不写文件

	// 文件轮转，仅在 FilePath 非空时生效
	MaxSize    int  `json:"max_size"` // MB
	MaxBackups int  `json:"max_backups"`
	MaxAge     int  `json:"max_age"` // 天
	Compress   bool `json:"compress"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"` // error 级别附带堆栈
}

// Config 日志配置
type Config struct {
	options *LogOptions
}

// New 以默认值为底，叠加配置文件 log 段中出现的字段
//
// 只指定 file_path 时关闭控制台输出，准入拒绝的 warn 日志只进文件。
func New(userConfig *types.UserLogConfig) *Config {
	options := &LogOptions{
		Level:            defaultLogLevel,
		ToConsole:        defaultToConsole,
		FilePath:         defaultFilePath,
		MaxSize:          defaultMaxSize,
		MaxBackups:       defaultMaxBackups,
		MaxAge:           defaultMaxAge,
		Compress:         defaultCompress,
		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,
	}

	if userConfig != nil {
		if userConfig.Level != nil {
			options.Level = strings.ToLower(strings.TrimSpace(*userConfig.Level))
		}
		if userConfig.FilePath != nil {
			options.FilePath = *userConfig.FilePath
			options.ToConsole = options.FilePath == ""
		}
		if userConfig.ToConsole != nil {
			options.ToConsole = *userConfig.ToConsole
		}
	}

	return &Config{options: options}
}

// NewFromProvider 从配置提供者取 log 段，provider 不提供时使用默认值
func NewFromProvider(provider interface{}) *Config {
	if p, ok := provider.(interface{ GetLog() *LogOptions }); ok {
		if options := p.GetLog(); options != nil {
			return &Config{options: options}
		}
	}
	return New(nil)
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *LogOptions { return c.options }

// GetLevel 获取日志级别名
func (c *Config) GetLevel() string { return c.options.Level }

// GetZapLevel 级别名对应的 zap 级别，未知名称按 info 处理
func (c *Config) GetZapLevel() zapcore.Level {
	if level, ok := defaultLevelMap[c.options.Level]; ok {
		return level
	}
	return zapcore.InfoLevel
}

func (c *Config) IsFileEnabled() bool        { return c.options.FilePath != "" }
func (c *Config) IsConsoleEnabled() bool     { return c.options.ToConsole }
func (c *Config) GetFilePath() string        { return c.options.FilePath }
func (c *Config) GetMaxSize() int            { return c.options.MaxSize }
func (c *Config) GetMaxBackups() int         { return c.options.MaxBackups }
func (c *Config) GetMaxAge() int             { return c.options.MaxAge }
func (c *Config) IsCompressionEnabled() bool { return c.options.Compress }
func (c *Config) IsCallerEnabled() bool      { return c.options.EnableCaller }
func (c *Config) IsStacktraceEnabled() bool  { return c.options.EnableStacktrace }

// encoderConfig 文件与控制台共用的字段名，run_id、module 等字段由调用方追加
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	}
}

// CreateFileEncoder 文件日志为逐行 JSON，便于按 run_id 检索回放
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(encoderConfig())
}

// CreateConsoleEncoder 标准错误上的彩色文本
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// IsKnownLevel 是否为已知日志级别
func IsKnownLevel(level string) bool {
	_, ok := defaultLevelMap[level]
	return ok
}
