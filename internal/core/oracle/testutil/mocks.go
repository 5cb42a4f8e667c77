// Package testutil 提供预言机模块测试的辅助工具
//
// 🧪 **测试辅助工具包**
//
// 本包提供测试所需的 Mock 对象、测试密钥和签名辅助函数，用于简化测试代码编写。
package testutil

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/log"
	oracleif "github.com/weisyn/pricing/pkg/interfaces/oracle"
	"github.com/weisyn/pricing/pkg/types"
)

// ==================== Mock 对象 ====================

// MockLogger 统一的日志Mock实现
//
// ✅ **设计原则**：最小实现，所有方法返回空值，不记录日志
type MockLogger struct{}

func (m *MockLogger) Debug(msg string)                          {}
func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Info(msg string)                           {}
func (m *MockLogger) Infof(format string, args ...interface{})  {}
func (m *MockLogger) Warn(msg string)                           {}
func (m *MockLogger) Warnf(format string, args ...interface{})  {}
func (m *MockLogger) Error(msg string)                          {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}
func (m *MockLogger) Fatal(msg string)                          {}
func (m *MockLogger) Fatalf(format string, args ...interface{}) {}
func (m *MockLogger) With(args ...interface{}) log.Logger       { return m }
func (m *MockLogger) Sync() error                               { return nil }
func (m *MockLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }

// LogEntry 记录的一条日志
type LogEntry struct {
	Level   string
	Message string
}

// RecordingLogger 记录所有日志调用，用于断言日志级别
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordingLogger 创建记录型日志
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (r *RecordingLogger) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, LogEntry{Level: level, Message: msg})
}

func (r *RecordingLogger) Debug(msg string) { r.record("debug", msg) }
func (r *RecordingLogger) Debugf(format string, args ...interface{}) {
	r.record("debug", fmt.Sprintf(format, args...))
}
func (r *RecordingLogger) Info(msg string) { r.record("info", msg) }
func (r *RecordingLogger) Infof(format string, args ...interface{}) {
	r.record("info", fmt.Sprintf(format, args...))
}
func (r *RecordingLogger) Warn(msg string) { r.record("warn", msg) }
func (r *RecordingLogger) Warnf(format string, args ...interface{}) {
	r.record("warn", fmt.Sprintf(format, args...))
}
func (r *RecordingLogger) Error(msg string) { r.record("error", msg) }
func (r *RecordingLogger) Errorf(format string, args ...interface{}) {
	r.record("error", fmt.Sprintf(format, args...))
}
func (r *RecordingLogger) Fatal(msg string) { r.record("fatal", msg) }
func (r *RecordingLogger) Fatalf(format string, args ...interface{}) {
	r.record("fatal", fmt.Sprintf(format, args...))
}
func (r *RecordingLogger) With(args ...interface{}) log.Logger { return r }
func (r *RecordingLogger) Sync() error                         { return nil }
func (r *RecordingLogger) GetZapLogger() *zap.Logger           { return zap.NewNop() }

// Entries 返回已记录日志的副本
func (r *RecordingLogger) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// CountLevel 返回指定级别的日志条数
func (r *RecordingLogger) CountLevel(level string) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// StaticKeyResolver 固定映射的受信公钥解析器
type StaticKeyResolver map[types.NetworkType]string

// TrustedKey 实现 oracle.TrustedKeyResolver
func (s StaticKeyResolver) TrustedKey(network types.NetworkType) (string, error) {
	key, ok := s[network]
	if !ok {
		return "", fmt.Errorf("no trusted key for network %s", network)
	}
	return key, nil
}

// RecordingObserver 记录所有准入结论
type RecordingObserver struct {
	mu       sync.Mutex
	verdicts []oracleif.Verdict
}

// ObserveVerdict 实现 oracle.VerdictObserver
func (o *RecordingObserver) ObserveVerdict(v oracleif.Verdict) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.verdicts = append(o.verdicts, v)
}

// Verdicts 返回已记录结论的副本
func (o *RecordingObserver) Verdicts() []oracleif.Verdict {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]oracleif.Verdict, len(o.verdicts))
	copy(out, o.verdicts)
	return out
}
