package policy

import (
	"github.com/weisyn/pricing/pkg/types"
)

// ReplayEntry 回放序列中的一个区块
type ReplayEntry struct {
	ProtocolVersion uint32
	BlockTimestamp  uint64
	Record          types.PricingRecord
}

// ReplayResult 单个区块的回放结论
type ReplayResult struct {
	Index   int
	Context types.BlockContext
	Err     error // nil 表示接受
}

// Accepted 是否接受
func (r ReplayResult) Accepted() bool {
	return r.Err == nil
}

// ReplaySummary 回放统计
type ReplaySummary struct {
	Total    int
	Accepted int
	Rejected int
	ByReason map[types.RejectReason]int
}

// ValidateSequence 按区块顺序回放一组记录
//
// 第 i 个区块的上一区块时间戳取第 i-1 个区块的时间戳，首个区块使用 initialPreviousTimestamp。
// 每个区块独立判定，拒绝不会中断回放。runID 透传给观察者用于关联。
func (s *Service) ValidateSequence(
	network types.NetworkType,
	initialPreviousTimestamp uint64,
	entries []ReplayEntry,
	runID string,
) []ReplayResult {
	results := make([]ReplayResult, 0, len(entries))
	previous := initialPreviousTimestamp

	for i, entry := range entries {
		ctx := types.BlockContext{
			Network:                network,
			ProtocolVersion:        entry.ProtocolVersion,
			BlockTimestamp:         entry.BlockTimestamp,
			PreviousBlockTimestamp: previous,
		}
		results = append(results, ReplayResult{
			Index:   i,
			Context: ctx,
			Err:     s.validate(entry.Record, ctx, runID),
		})
		previous = entry.BlockTimestamp
	}

	if s.logger != nil {
		summary := Summarize(results)
		s.logger.Infof("定价记录回放完成: run_id=%s network=%s total=%d accepted=%d rejected=%d",
			runID, network, summary.Total, summary.Accepted, summary.Rejected)
	}
	return results
}

// Summarize 汇总回放结论
func Summarize(results []ReplayResult) ReplaySummary {
	summary := ReplaySummary{
		Total:    len(results),
		ByReason: make(map[types.RejectReason]int),
	}
	for _, r := range results {
		if r.Accepted() {
			summary.Accepted++
			continue
		}
		summary.Rejected++
		summary.ByReason[types.RejectReasonOf(r.Err)]++
	}
	return summary
}
