// Package clock 提供本地时间源实现
package clock

import (
	"time"

	infraClock "github.com/weisyn/pricing/pkg/interfaces/infrastructure/clock"
)

// SystemClock 使用系统真实时间
type SystemClock struct{}

func NewSystemClock() infraClock.Clock { return &SystemClock{} }

func (c *SystemClock) Now() time.Time { return time.Now() }
func (c *SystemClock) Unix() int64    { return time.Now().Unix() }

// FixedClock 固定时间的时钟，用于测试与可复现的校验
type FixedClock struct{ current time.Time }

func NewFixedClock(t time.Time) *FixedClock { return &FixedClock{current: t} }

func (c *FixedClock) Now() time.Time { return c.current }
func (c *FixedClock) Unix() int64    { return c.current.Unix() }

var (
	_ infraClock.Clock = (*SystemClock)(nil)
	_ infraClock.Clock = (*FixedClock)(nil)
)
