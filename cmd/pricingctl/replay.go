package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	logmodule "github.com/weisyn/pricing/internal/core/infrastructure/log"
	"github.com/weisyn/pricing/internal/core/oracle/codec"
	"github.com/weisyn/pricing/internal/core/oracle/policy"
	"github.com/weisyn/pricing/pkg/types"
)

// replayFile 回放输入文件（JSON 或 YAML）
//
//	network: fakechain
//	initial_previous_timestamp: 1699999000
//	entries:
//	  - protocol_version: 21
//	    block_timestamp: 1700000000
//	    record: {pr_version: 1, spot: ..., moving_average: ..., timestamp: ..., signature: "..."}
//
// 省略 record 表示该区块不带定价记录（空记录）。
type replayFile struct {
	Network                  string            `json:"network" yaml:"network"`
	InitialPreviousTimestamp uint64            `json:"initial_previous_timestamp" yaml:"initial_previous_timestamp"`
	Entries                  []replayFileEntry `json:"entries" yaml:"entries"`
}

type replayFileEntry struct {
	ProtocolVersion uint32            `json:"protocol_version" yaml:"protocol_version"`
	BlockTimestamp  uint64            `json:"block_timestamp" yaml:"block_timestamp"`
	Record          *codec.WireRecord `json:"record,omitempty" yaml:"record,omitempty"`
}

// parseReplayFile 按扩展名解析回放文件，无扩展名（标准输入）按 JSON 解析
func parseReplayFile(data []byte, path string) (*replayFile, error) {
	var file replayFile

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("解析回放文件失败: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("解析回放文件失败: %w", err)
		}
	}
	return &file, nil
}

// toEntries 转换为回放条目，任一记录无法解码时整体失败
func (f *replayFile) toEntries() ([]policy.ReplayEntry, error) {
	entries := make([]policy.ReplayEntry, 0, len(f.Entries))
	for i, e := range f.Entries {
		entry := policy.ReplayEntry{
			ProtocolVersion: e.ProtocolVersion,
			BlockTimestamp:  e.BlockTimestamp,
		}
		if e.Record != nil {
			record, err := codec.FromWire(*e.Record)
			if err != nil {
				return nil, fmt.Errorf("第 %d 个区块的记录无效: %w", i, err)
			}
			entry.Record = record
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// replayOutput 回放结果
type replayOutput struct {
	RunID    string          `json:"run_id"`
	Network  string          `json:"network"`
	Total    int             `json:"total"`
	Accepted int             `json:"accepted"`
	Rejected int             `json:"rejected"`
	ByReason map[string]int  `json:"by_reason,omitempty"`
	Verdicts []verdictOutput `json:"verdicts"`
}

func newReplayOutput(runID string, network types.NetworkType, results []policy.ReplayResult) replayOutput {
	summary := policy.Summarize(results)
	out := replayOutput{
		RunID:    runID,
		Network:  network.String(),
		Total:    summary.Total,
		Accepted: summary.Accepted,
		Rejected: summary.Rejected,
		Verdicts: make([]verdictOutput, 0, len(results)),
	}
	if len(summary.ByReason) > 0 {
		out.ByReason = make(map[string]int, len(summary.ByReason))
		for reason, n := range summary.ByReason {
			out.ByReason[reason.String()] = n
		}
	}
	for _, r := range results {
		out.Verdicts = append(out.Verdicts, newVerdictOutput(r.Context, r.Err))
	}
	return out
}

// TableRows 实现 Tabular
func (r replayOutput) TableRows() [][]string {
	rows := [][]string{{"#", "protocol_version", "block_timestamp", "previous", "result", "reason"}}
	for i, v := range r.Verdicts {
		result := "accepted"
		if !v.Accepted {
			result = "rejected"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatUint(uint64(v.ProtocolVersion), 10),
			strconv.FormatUint(v.BlockTimestamp, 10),
			strconv.FormatUint(v.PreviousBlockTimestamp, 10),
			result,
			v.Reason,
		})
	}

	reasons := make([]string, 0, len(r.ByReason))
	for reason, n := range r.ByReason {
		reasons = append(reasons, fmt.Sprintf("%s=%d", reason, n))
	}
	sort.Strings(reasons)
	rows = append(rows, []string{
		"Σ",
		"run " + r.RunID,
		r.Network,
		fmt.Sprintf("total=%d", r.Total),
		fmt.Sprintf("accepted=%d rejected=%d", r.Accepted, r.Rejected),
		strings.Join(reasons, " "),
	})
	return rows
}

func newReplayCommand(c *cli) *cobra.Command {
	var (
		path         string
		failOnReject bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "按区块顺序回放定价记录",
		Long: `按区块顺序回放一组定价记录。

每个区块的上一区块时间戳取前一个条目的区块时间戳，首个条目使用
initial_previous_timestamp。网络类型优先取 --network，其次取文件中的 network，
最后取配置文件。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.readInput(path)
			if err != nil {
				return fmt.Errorf("读取回放文件失败: %w", err)
			}
			file, err := parseReplayFile(data, path)
			if err != nil {
				return err
			}
			entries, err := file.toEntries()
			if err != nil {
				return err
			}

			// 文件中的网络仅在命令行未指定时生效
			if c.flags.Network == "" && file.Network != "" {
				c.flags.Network = file.Network
			}
			services, err := c.services()
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			network := services.Provider.GetNetwork()
			logger := logmodule.NewModuleLogger(services.Logger, "replay").With("run_id", runID)
			logger.Infof("开始回放定价记录: network=%s entries=%d", network, len(entries))

			results := services.Policy.ValidateSequence(network, file.InitialPreviousTimestamp, entries, runID)
			output := newReplayOutput(runID, network, results)
			logger.Infof("回放完成: accepted=%d rejected=%d", output.Accepted, output.Rejected)
			if err := c.formatter.Print(output); err != nil {
				return err
			}

			if failOnReject && output.Rejected > 0 {
				return fmt.Errorf("%w: %d of %d blocks", types.ErrPricingRecordRejected, output.Rejected, output.Total)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&path, "file", "f", "", "回放文件 (JSON/YAML，\"-\" 为标准输入 JSON)")
	f.BoolVar(&failOnReject, "fail-on-reject", false, "存在被拒绝的区块时以退出码 2 结束")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
