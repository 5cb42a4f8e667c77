package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weisyn/pricing/pkg/types"
)

// verdictOutput 单条记录的准入结论
type verdictOutput struct {
	Network                string `json:"network"`
	ProtocolVersion        uint32 `json:"protocol_version"`
	BlockTimestamp         uint64 `json:"block_timestamp"`
	PreviousBlockTimestamp uint64 `json:"previous_block_timestamp"`
	Accepted               bool   `json:"accepted"`
	Reason                 string `json:"reason"`
	Error                  string `json:"error,omitempty"`
}

func newVerdictOutput(ctx types.BlockContext, err error) verdictOutput {
	out := verdictOutput{
		Network:                ctx.Network.String(),
		ProtocolVersion:        ctx.ProtocolVersion,
		BlockTimestamp:         ctx.BlockTimestamp,
		PreviousBlockTimestamp: ctx.PreviousBlockTimestamp,
		Accepted:               err == nil,
		Reason:                 types.RejectReasonOf(err).String(),
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// TableRows 实现 Tabular
func (v verdictOutput) TableRows() [][]string {
	result := "✅ accepted"
	if !v.Accepted {
		result = "❌ rejected"
	}
	return [][]string{
		{"Field", "Value"},
		{"network", v.Network},
		{"protocol_version", strconv.FormatUint(uint64(v.ProtocolVersion), 10)},
		{"block_timestamp", strconv.FormatUint(v.BlockTimestamp, 10)},
		{"previous_block_timestamp", strconv.FormatUint(v.PreviousBlockTimestamp, 10)},
		{"result", result},
		{"reason", v.Reason},
	}
}

func newValidateCommand(c *cli) *cobra.Command {
	var (
		input           recordInput
		protocolVersion uint32
		blockTimestamp  uint64
		prevTimestamp   uint64
		useNow          bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "校验单条定价记录",
		Long: `在给定区块上下文下校验一条定价记录。

记录被拒绝时输出结论并以退出码 2 结束。网络类型取自 --network 或配置文件。
指定 --now 时区块时间戳取本地时钟（system 或 ntp，见配置 clock.source）。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useNow == cmd.Flags().Changed("block-timestamp") {
				return errors.New("必须且只能指定 --block-timestamp、--now 之一")
			}

			record, err := input.load(c)
			if err != nil {
				return err
			}

			services, err := c.services()
			if err != nil {
				return err
			}
			if useNow {
				blockTimestamp = uint64(services.Clock.Unix())
			}

			ctx := types.BlockContext{
				Network:                services.Provider.GetNetwork(),
				ProtocolVersion:        protocolVersion,
				BlockTimestamp:         blockTimestamp,
				PreviousBlockTimestamp: prevTimestamp,
			}
			verdictErr := services.Policy.Validate(record, ctx)

			if err := c.formatter.Print(newVerdictOutput(ctx, verdictErr)); err != nil {
				return err
			}
			return verdictErr
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input.path, "record", "r", "", "JSON 线上结构记录文件 (\"-\" 为标准输入)")
	f.StringVar(&input.blobHex, "blob", "", "96字节二进制块 (十六进制)")
	f.StringVar(&input.protoHex, "proto", "", "protobuf 容器 (十六进制)")
	f.Uint32Var(&protocolVersion, "protocol-version", 0, "区块协议版本")
	f.Uint64Var(&blockTimestamp, "block-timestamp", 0, "区块时间戳 (秒)")
	f.Uint64Var(&prevTimestamp, "prev-timestamp", 0, "上一区块时间戳 (秒)")
	f.BoolVar(&useNow, "now", false, "以本地时钟作为区块时间戳")
	_ = cmd.MarkFlagRequired("protocol-version")

	return cmd
}
