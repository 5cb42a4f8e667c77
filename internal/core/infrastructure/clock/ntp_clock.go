package clock

import (
	"sync"
	"time"

	"github.com/beevik/ntp"

	clockconfig "github.com/weisyn/pricing/internal/config/clock"
	infraClock "github.com/weisyn/pricing/pkg/interfaces/infrastructure/clock"
)

// queryFunc NTP 查询函数
type queryFunc func(server string) (*ntp.Response, error)

// NTPClock 通过NTP周期性校正偏移的时钟实现
//
// 同步失败时沿用上次偏移并指数退避重试，并发安全。
type NTPClock struct {
	mu sync.Mutex

	server             string
	syncInterval       time.Duration
	backoffInitial     time.Duration
	backoffMax         time.Duration
	unhealthyThreshold time.Duration
	query              queryFunc
	now                func() time.Time

	offset    time.Duration
	lastSync  time.Time
	lastTry   time.Time
	backoff   time.Duration
	lastError error
}

var _ infraClock.Clock = (*NTPClock)(nil)

// NewNTPClock 创建NTP时钟
//
// 首次同步失败不致命，偏移置零，后续按退避重试。
func NewNTPClock(options *clockconfig.ClockOptions) *NTPClock {
	return newNTPClock(options, ntp.Query, time.Now)
}

func newNTPClock(options *clockconfig.ClockOptions, query queryFunc, now func() time.Time) *NTPClock {
	c := &NTPClock{
		server:             options.NTPServer,
		syncInterval:       options.SyncInterval,
		backoffInitial:     options.BackoffInitial,
		backoffMax:         options.BackoffMax,
		unhealthyThreshold: options.OffsetThreshold,
		query:              query,
		now:                now,
	}
	c.mu.Lock()
	c.syncLocked()
	c.mu.Unlock()
	return c
}

// Now 返回校正后的当前时间
func (c *NTPClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maybeSyncLocked()
	return c.now().Add(c.offset)
}

// Unix 返回校正后的Unix时间戳（秒）
func (c *NTPClock) Unix() int64 { return c.Now().Unix() }

// Health 返回当前健康状态与关键指标
//
// healthy: 最近一次同步无错误，且偏移量在阈值内（阈值为0时不检查偏移）
func (c *NTPClock) Health() (healthy bool, offset time.Duration, lastSync time.Time, lastError error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	offset, lastSync, lastError = c.offset, c.lastSync, c.lastError
	if lastError != nil {
		return false, offset, lastSync, lastError
	}
	if c.unhealthyThreshold > 0 && (offset < -c.unhealthyThreshold || offset > c.unhealthyThreshold) {
		return false, offset, lastSync, nil
	}
	return true, offset, lastSync, nil
}

func (c *NTPClock) maybeSyncLocked() {
	effective := c.syncInterval
	if c.backoff > 0 {
		effective = c.backoff
	}
	if c.now().Sub(c.lastTry) < effective {
		return
	}
	c.syncLocked()
}

func (c *NTPClock) syncLocked() {
	c.lastTry = c.now()

	resp, err := c.query(c.server)
	if err != nil {
		c.lastError = err
		switch {
		case c.backoff == 0:
			c.backoff = c.backoffInitial
		case c.backoff*2 > c.backoffMax:
			c.backoff = c.backoffMax
		default:
			c.backoff *= 2
		}
		return
	}

	c.offset = resp.ClockOffset
	c.lastSync = c.lastTry
	c.lastError = nil
	c.backoff = 0
}
