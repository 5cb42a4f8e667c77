package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/pricing/internal/core/oracle/signature"
)

// keyOutput 公钥信息
type keyOutput struct {
	Network     string `json:"network,omitempty"`
	Algorithm   string `json:"algorithm"`
	Fingerprint string `json:"fingerprint"`
	Point       string `json:"point,omitempty"`
	Error       string `json:"error,omitempty"`
}

func inspectKey(pemText string) keyOutput {
	key, err := signature.ParsePublicKeyPEM(pemText)
	if err != nil {
		return keyOutput{Error: err.Error()}
	}
	return keyOutput{
		Algorithm:   string(key.Algorithm()),
		Fingerprint: key.Fingerprint(),
		Point:       hex.EncodeToString(key.SerializeUncompressed()),
	}
}

// TableRows 实现 Tabular
func (k keyOutput) TableRows() [][]string {
	if k.Error != "" {
		return [][]string{{"Field", "Value"}, {"error", k.Error}}
	}
	return [][]string{
		{"Field", "Value"},
		{"algorithm", k.Algorithm},
		{"fingerprint", k.Fingerprint},
		{"point", k.Point},
	}
}

// keyListOutput 已配置的受信公钥
type keyListOutput []keyOutput

// TableRows 实现 Tabular
func (l keyListOutput) TableRows() [][]string {
	rows := [][]string{{"network", "algorithm", "fingerprint", "error"}}
	for _, k := range l {
		rows = append(rows, []string{k.Network, k.Algorithm, k.Fingerprint, k.Error})
	}
	return rows
}

func newKeyCommand(c *cli) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "查看受信公钥",
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect <pem-file>",
		Short: "显示 PEM 公钥的算法与指纹",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.readInput(args[0])
			if err != nil {
				return fmt.Errorf("读取公钥失败: %w", err)
			}
			out := inspectKey(string(data))
			if out.Error != "" {
				return fmt.Errorf("公钥无效: %s", out.Error)
			}
			return c.formatter.Print(out)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "列出配置中各网络的受信公钥指纹",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := c.services()
			if err != nil {
				return err
			}
			oracleOptions := services.Provider.GetOracle()

			out := keyListOutput{}
			for _, network := range services.OracleConfig.ConfiguredNetworks() {
				k := inspectKey(oracleOptions.TrustedKeys[network])
				k.Network = network.String()
				out = append(out, k)
			}
			return c.formatter.Print(out)
		},
	}

	keyCmd.AddCommand(inspectCmd, listCmd)
	return keyCmd
}
