package event

import (
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/event"
	oracleif "github.com/weisyn/pricing/pkg/interfaces/oracle"
)

// VerdictPublisher 将准入结论发布到事件总线
//
// 订阅者处理函数签名为 func(oracle.Verdict)。
type VerdictPublisher struct {
	bus event.EventBus
}

var _ oracleif.VerdictObserver = (*VerdictPublisher)(nil)

// NewVerdictPublisher 创建结论发布器
func NewVerdictPublisher(bus event.EventBus) *VerdictPublisher {
	return &VerdictPublisher{bus: bus}
}

// ObserveVerdict 实现 oracle.VerdictObserver
func (p *VerdictPublisher) ObserveVerdict(v oracleif.Verdict) {
	if p == nil || p.bus == nil {
		return
	}
	if v.Accepted {
		p.bus.Publish(EventTypePricingRecordAccepted, v)
		return
	}
	p.bus.Publish(EventTypePricingRecordRejected, v)
}
