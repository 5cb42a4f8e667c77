// Package clock provides clock synchronization interfaces.
package clock

import "time"

// Clock 本地时间源接口
//
// 用于在没有真实区块时按"当前时间"构造区块上下文，可替换为 NTP 校正时钟。
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64
}
