// Package metrics 提供定价记录准入的 Prometheus 指标
package metrics

import (
	"io"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	oracleif "github.com/weisyn/pricing/pkg/interfaces/oracle"
)

// 定价记录准入 Prometheus 指标
//
// 使用默认 Registry，方便通过 /metrics 统一抓取。
const (
	metricsNamespace = "pricing"
	metricsSubsystem = "oracle"
)

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
)

var (
	oracleMetricsOnce sync.Once

	verdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "verdicts_total",
			Help:      "Pricing record admissibility verdicts by network, result and reject reason.",
		},
		[]string{"network", "result", "reason"},
	)

	verifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "signature_verify_seconds",
			Help:      "Time spent verifying pricing record signatures.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"network"},
	)
)

// initOracleMetrics 在首次使用时注册指标
func initOracleMetrics() {
	oracleMetricsOnce.Do(func() {
		prometheus.MustRegister(verdictsTotal, verifyDuration)
	})
}

// VerdictRecorder 将准入结论写入 Prometheus 指标
type VerdictRecorder struct {
	enabled bool
}

var _ oracleif.VerdictObserver = (*VerdictRecorder)(nil)

// NewVerdictRecorder 创建指标记录器，enabled 为 false 时不做任何记录
func NewVerdictRecorder(enabled bool) *VerdictRecorder {
	if enabled {
		initOracleMetrics()
	}
	return &VerdictRecorder{enabled: enabled}
}

// ObserveVerdict 实现 oracle.VerdictObserver
func (r *VerdictRecorder) ObserveVerdict(v oracleif.Verdict) {
	if r == nil || !r.enabled {
		return
	}

	network := string(v.Context.Network)
	result := resultRejected
	if v.Accepted {
		result = resultAccepted
	}
	verdictsTotal.WithLabelValues(network, result, v.Reason.String()).Inc()

	if v.VerifyDuration > 0 {
		verifyDuration.WithLabelValues(network).Observe(v.VerifyDuration.Seconds())
	}
}

// WriteText 以 Prometheus 文本格式输出 pricing_ 命名空间下的指标
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	prefix := metricsNamespace + "_"
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
