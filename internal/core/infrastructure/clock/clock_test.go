package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clockconfig "github.com/weisyn/pricing/internal/config/clock"
	"github.com/weisyn/pricing/pkg/types"
)

// fakeNTP 可控的NTP查询桩
type fakeNTP struct {
	offset time.Duration
	err    error
	calls  int
}

func (f *fakeNTP) query(string) (*ntp.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ntp.Response{ClockOffset: f.offset, Stratum: 2}, nil
}

func testOptions() *clockconfig.ClockOptions {
	return clockconfig.New(&types.UserClockConfig{Source: types.StringPtr("ntp")}).GetOptions()
}

// TestNTPClock_AppliesOffset 测试偏移校正与同步间隔
func TestNTPClock_AppliesOffset(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	current := base
	fake := &fakeNTP{offset: 200 * time.Millisecond}

	c := newNTPClock(testOptions(), fake.query, func() time.Time { return current })

	assert.Equal(t, base.Add(200*time.Millisecond), c.Now())
	assert.Equal(t, int64(1_700_000_000), c.Unix())
	assert.Equal(t, 1, fake.calls)

	ok, offset, lastSync, err := c.Health()
	assert.True(t, ok)
	assert.Equal(t, 200*time.Millisecond, offset)
	assert.Equal(t, base, lastSync)
	assert.NoError(t, err)

	// 同步间隔到期后重新查询
	current = base.Add(testOptions().SyncInterval)
	fake.offset = -100 * time.Millisecond
	assert.Equal(t, current.Add(-100*time.Millisecond), c.Now())
	assert.Equal(t, 2, fake.calls)
}

// TestNTPClock_FailureBacksOff 测试同步失败时保持偏移并退避
func TestNTPClock_FailureBacksOff(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	current := base
	fake := &fakeNTP{err: errors.New("timeout")}

	c := newNTPClock(testOptions(), fake.query, func() time.Time { return current })
	assert.Equal(t, base, c.Now())

	ok, _, _, err := c.Health()
	assert.False(t, ok)
	assert.Error(t, err)

	// 退避期内不重试
	current = base.Add(time.Second)
	c.Now()
	assert.Equal(t, 1, fake.calls)

	// 退避到期后重试并恢复
	fake.err = nil
	fake.offset = 300 * time.Millisecond
	current = base.Add(testOptions().BackoffInitial)
	assert.Equal(t, current.Add(300*time.Millisecond), c.Now())
	assert.Equal(t, 2, fake.calls)

	ok, _, _, err = c.Health()
	assert.True(t, ok)
	assert.NoError(t, err)
}

// TestNTPClock_OffsetThreshold 测试偏移超过阈值判定不健康
func TestNTPClock_OffsetThreshold(t *testing.T) {
	fake := &fakeNTP{offset: time.Second}
	c := newNTPClock(testOptions(), fake.query, time.Now)

	ok, offset, _, err := c.Health()
	assert.False(t, ok)
	assert.Equal(t, time.Second, offset)
	assert.NoError(t, err)
}

// TestRegisterClockMetrics 测试时钟指标采集
func TestRegisterClockMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	fetch := func() (bool, time.Duration, time.Time, error) {
		return true, 250 * time.Millisecond, time.Unix(1_700_000_000, 0), nil
	}

	require.NoError(t, RegisterClockMetrics(registry, fetch))
	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	err = RegisterClockMetrics(registry, fetch)
	var already prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(err, &already))
}

// TestFixedClock 测试固定时钟
func TestFixedClock(t *testing.T) {
	c := NewFixedClock(time.Unix(42, 0))
	assert.Equal(t, int64(42), c.Unix())
	assert.Equal(t, time.Unix(42, 0), c.Now())
}
