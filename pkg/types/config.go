// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
//
// 🔧 零值处理：字段均为指针类型
// - nil: 用户未设置，使用系统默认值
// - &value: 用户明确设置，即使是零值也会被采用
type AppConfig struct {
	// 应用程序基本信息
	AppName     *string `json:"app_name,omitempty" yaml:"app_name,omitempty"`       // 应用名称
	Environment *string `json:"environment,omitempty" yaml:"environment,omitempty"` // 运行环境：dev | test | prod

	// Network 本节点所在网络（mainnet | testnet | stagenet | fakechain）
	Network *string `json:"network,omitempty" yaml:"network,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// 预言机定价记录配置
	Oracle *UserOracleConfig `json:"oracle,omitempty" yaml:"oracle,omitempty"`

	// 指标配置
	Metrics *UserMetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// 事件配置
	Event *UserEventConfig `json:"event,omitempty" yaml:"event,omitempty"`

	// 本地时钟配置（validate --now 使用）
	Clock *UserClockConfig `json:"clock,omitempty" yaml:"clock,omitempty"`
}

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level     *string `json:"level,omitempty" yaml:"level,omitempty"`           // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty" yaml:"file_path,omitempty"`   // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty" yaml:"to_console,omitempty"` // 是否输出到控制台
}

// UserOracleConfig 用户预言机配置
type UserOracleConfig struct {
	// ActivationVersion 允许携带非空定价记录的最低协议版本
	ActivationVersion *uint32 `json:"activation_version,omitempty" yaml:"activation_version,omitempty"`

	// MaxFutureSkewSeconds 记录时间戳相对区块时间戳允许的最大超前量（秒）
	MaxFutureSkewSeconds *uint64 `json:"max_future_skew_seconds,omitempty" yaml:"max_future_skew_seconds,omitempty"`

	// TrustedKeys 各网络的可信公钥（PEM 文本）
	TrustedKeys map[string]string `json:"trusted_keys,omitempty" yaml:"trusted_keys,omitempty"`

	// TrustedKeyFiles 各网络的可信公钥文件路径（PEM），与 TrustedKeys 同时出现时 TrustedKeys 优先
	TrustedKeyFiles map[string]string `json:"trusted_key_files,omitempty" yaml:"trusted_key_files,omitempty"`
}

// UserMetricsConfig 用户指标配置
type UserMetricsConfig struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"` // 是否启用 Prometheus 指标
}

// UserEventConfig 用户事件配置
type UserEventConfig struct {
	Enabled     *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`           // 是否发布准入事件
	HistorySize *int  `json:"history_size,omitempty" yaml:"history_size,omitempty"` // 每类事件保留的最近事件数
}

// UserClockConfig 用户时钟配置
type UserClockConfig struct {
	Source                *string `json:"source,omitempty" yaml:"source,omitempty"`                                   // system | ntp
	NTPServer             *string `json:"ntp_server,omitempty" yaml:"ntp_server,omitempty"`                           // NTP 服务器
	SyncIntervalSeconds   *uint64 `json:"sync_interval_seconds,omitempty" yaml:"sync_interval_seconds,omitempty"`     // 重新同步间隔
	OffsetThresholdMillis *uint64 `json:"offset_threshold_millis,omitempty" yaml:"offset_threshold_millis,omitempty"` // 判定不健康的偏移阈值
}

// BoolPtr 返回布尔值指针
func BoolPtr(v bool) *bool {
	return &v
}

// StringPtr 返回字符串指针
func StringPtr(v string) *string {
	return &v
}

// UInt32Ptr 返回 uint32 指针
func UInt32Ptr(v uint32) *uint32 {
	return &v
}

// UInt64Ptr 返回 uint64 指针
func UInt64Ptr(v uint64) *uint64 {
	return &v
}
