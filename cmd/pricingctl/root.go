package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/pricing/internal/app"
	"github.com/weisyn/pricing/internal/app/version"
	"github.com/weisyn/pricing/internal/core/infrastructure/metrics"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath   string // 配置文件路径
	Network      string // 覆盖配置中的网络
	OutputFormat string // 输出格式
	ShowMetrics  bool   // 命令结束后输出指标快照
}

// cli 命令共享的运行时状态
type cli struct {
	flags  GlobalFlags
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	application app.App
	formatter   *Formatter
}

// newRootCommand 创建根命令
//
// 返回的 cli 在命令执行后需调用 finish 释放容器。
func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) (*cobra.Command, *cli) {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "pricingctl",
		Short: "预言机定价记录准入工具",
		Long: `pricingctl - 预言机定价记录的编解码与准入校验

支持的能力:
- 按区块上下文校验单条定价记录
- 按区块顺序回放一组记录
- 定价记录的二进制块 / protobuf / JSON 互转
- 查看受信公钥的算法与指纹`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(c.flags.OutputFormat)
			if err != nil {
				return err
			}
			c.formatter = NewFormatter(format, c.stdout)
			return nil
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.flags.ConfigPath, "config", "c", "", "配置文件路径 (JSON/YAML，默认读取 $"+app.ConfigPathEnv+")")
	pf.StringVarP(&c.flags.Network, "network", "n", "", "网络类型: mainnet|testnet|stagenet|fakechain (覆盖配置)")
	pf.StringVarP(&c.flags.OutputFormat, "output", "o", string(FormatTable), "输出格式: json|pretty|table")
	pf.BoolVar(&c.flags.ShowMetrics, "show-metrics", false, "命令结束后输出 Prometheus 指标快照")

	rootCmd.AddCommand(
		newValidateCommand(c),
		newReplayCommand(c),
		newDecodeCommand(c),
		newEncodeCommand(c),
		newKeyCommand(c),
		newVersionCommand(c),
	)
	return rootCmd, c
}

// services 按需启动依赖注入容器
func (c *cli) services() (*app.Services, error) {
	if c.application == nil {
		var opts []app.Option
		if c.flags.ConfigPath != "" {
			opts = append(opts, app.WithConfigFile(c.flags.ConfigPath))
		}
		if c.flags.Network != "" {
			opts = append(opts, app.WithNetwork(c.flags.Network))
		}

		application, err := app.Start(opts...)
		if err != nil {
			return nil, err
		}
		c.application = application
	}
	return c.application.Services(), nil
}

// finish 按需输出指标快照并停止已启动的容器
func (c *cli) finish() error {
	if c.application == nil {
		return nil
	}
	defer func() { c.application = nil }()

	if c.flags.ShowMetrics {
		if err := metrics.WriteText(c.stdout, nil); err != nil {
			_ = c.application.Stop()
			return fmt.Errorf("输出指标失败: %w", err)
		}
	}
	return c.application.Stop()
}

// readInput 读取文件内容，"-" 表示标准输入
func (c *cli) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.stdin)
	}
	return os.ReadFile(path)
}

// readHexArg 读取十六进制参数，允许 0x 前缀与空白
func readHexArg(s string) string {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(s, "0x")
	return strings.TrimPrefix(s, "0X")
}

func newVersionCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.stdout, version.GetFullVersion())
			return err
		},
	}
}
