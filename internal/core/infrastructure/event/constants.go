// 定价记录事件类型

package event

import "github.com/weisyn/pricing/pkg/interfaces/infrastructure/event"

const (
	// EventTypePricingRecordAccepted 记录通过准入校验
	EventTypePricingRecordAccepted event.EventType = "oracle.pricing_record.accepted"

	// EventTypePricingRecordRejected 记录被拒绝，载荷中带有拒绝原因
	EventTypePricingRecordRejected event.EventType = "oracle.pricing_record.rejected"
)
