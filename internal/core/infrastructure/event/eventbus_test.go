package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/pricing/internal/config/event"
	"github.com/weisyn/pricing/pkg/interfaces/infrastructure/event"
	oracleif "github.com/weisyn/pricing/pkg/interfaces/oracle"
	"github.com/weisyn/pricing/pkg/types"
)

// TestEventBus 测试同步、异步订阅与取消订阅
func TestEventBus(t *testing.T) {
	eventBus := New(eventconfig.New(nil))

	// 同步事件处理
	var receivedData string
	handler := func(data string) {
		receivedData = data
	}
	require.NoError(t, eventBus.Subscribe(event.EventType("test-event"), handler))
	eventBus.Publish(event.EventType("test-event"), "hello world")
	assert.Equal(t, "hello world", receivedData)

	// 异步事件处理
	var mu sync.Mutex
	var asyncData string
	asyncHandler := func(data string) {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		asyncData = data
		mu.Unlock()
	}
	require.NoError(t, eventBus.SubscribeAsync(event.EventType("async-event"), asyncHandler, false))
	eventBus.Publish(event.EventType("async-event"), "async data")
	eventBus.WaitAsync()
	mu.Lock()
	assert.Equal(t, "async data", asyncData)
	mu.Unlock()

	// 取消订阅后不再接收
	require.NoError(t, eventBus.Unsubscribe(event.EventType("test-event"), handler))
	receivedData = ""
	eventBus.Publish(event.EventType("test-event"), "should not receive")
	assert.Empty(t, receivedData)
}

// TestEventBus_History 测试事件历史容量
func TestEventBus_History(t *testing.T) {
	eventBus := New(eventconfig.New(&types.UserEventConfig{HistorySize: intPtr(2)}))

	eventBus.Publish(event.EventType("h"), 1)
	eventBus.Publish(event.EventType("h"), 2)
	eventBus.Publish(event.EventType("h"), 3)

	assert.Equal(t, []interface{}{2, 3}, eventBus.GetEventHistory(event.EventType("h")))
	assert.Nil(t, eventBus.GetEventHistory(event.EventType("other")))
}

// TestEventBus_Disabled 测试禁用时静默
func TestEventBus_Disabled(t *testing.T) {
	eventBus := New(eventconfig.New(&types.UserEventConfig{Enabled: types.BoolPtr(false)}))

	called := false
	require.NoError(t, eventBus.Subscribe(event.EventType("x"), func(int) { called = true }))
	eventBus.Publish(event.EventType("x"), 1)

	assert.False(t, called)
	assert.False(t, eventBus.HasCallback(event.EventType("x")))
	assert.Nil(t, eventBus.GetEventHistory(event.EventType("x")))
}

// TestVerdictPublisher 测试结论按结果分流
func TestVerdictPublisher(t *testing.T) {
	eventBus := New(eventconfig.New(nil))
	publisher := NewVerdictPublisher(eventBus)

	var accepted, rejected []oracleif.Verdict
	require.NoError(t, eventBus.Subscribe(EventTypePricingRecordAccepted, func(v oracleif.Verdict) {
		accepted = append(accepted, v)
	}))
	require.NoError(t, eventBus.Subscribe(EventTypePricingRecordRejected, func(v oracleif.Verdict) {
		rejected = append(rejected, v)
	}))

	publisher.ObserveVerdict(oracleif.Verdict{RunID: "a", Accepted: true})
	publisher.ObserveVerdict(oracleif.Verdict{RunID: "b", Reason: types.RejectReasonInvalidSignature})

	require.Len(t, accepted, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, "a", accepted[0].RunID)
	assert.Equal(t, types.RejectReasonInvalidSignature, rejected[0].Reason)

	var nilPublisher *VerdictPublisher
	assert.NotPanics(t, func() { nilPublisher.ObserveVerdict(oracleif.Verdict{}) })
}

func intPtr(v int) *int { return &v }
