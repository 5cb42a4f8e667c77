// Package event 定义事件总线接口
//
// 基础设施层只提供订阅与发布能力，具体事件类型由业务模块定义。
package event

// EventType 事件类型
type EventType string

// EventBus 事件总线接口
//
// 处理函数签名需与发布参数一致，由底层总线通过反射调用。
type EventBus interface {
	// Subscribe 同步订阅事件
	Subscribe(eventType EventType, handler interface{}) error
	// SubscribeAsync 异步订阅事件
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	// SubscribeOnce 一次性订阅事件
	SubscribeOnce(eventType EventType, handler interface{}) error
	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})
	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error
	// WaitAsync 等待所有异步处理完成
	WaitAsync()
	// HasCallback 检查是否有回调函数
	HasCallback(eventType EventType) bool
	// GetEventHistory 获取指定事件类型的最近事件
	// 历史功能未启用或没有记录时返回nil
	GetEventHistory(eventType EventType) []interface{}
}
