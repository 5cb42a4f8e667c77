package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weisyn/pricing/internal/core/oracle/codec"
)

// wireOutput 解码结果
type wireOutput struct {
	codec.WireRecord
	Empty        bool `json:"empty"`
	MissingRates bool `json:"missing_rates"`
}

// TableRows 实现 Tabular
func (w wireOutput) TableRows() [][]string {
	return [][]string{
		{"Field", "Value"},
		{"pr_version", strconv.FormatUint(w.PRVersion, 10)},
		{"spot", strconv.FormatUint(w.Spot, 10)},
		{"moving_average", strconv.FormatUint(w.MovingAverage, 10)},
		{"timestamp", strconv.FormatUint(w.Timestamp, 10)},
		{"signature", w.Signature},
		{"empty", strconv.FormatBool(w.Empty)},
		{"missing_rates", strconv.FormatBool(w.MissingRates)},
	}
}

func newDecodeCommand(c *cli) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "将二进制块或 protobuf 容器解码为线上结构",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if encoding != encodingBlob && encoding != encodingProto {
				return fmt.Errorf("--format 仅支持 %s|%s", encodingBlob, encodingProto)
			}
			record, err := decodeRecordHex(args[0], encoding)
			if err != nil {
				return err
			}
			return c.formatter.Print(wireOutput{
				WireRecord:   codec.ToWire(record),
				Empty:        record.IsEmpty(),
				MissingRates: record.HasMissingRates(),
			})
		},
	}
	cmd.Flags().StringVar(&encoding, "format", encodingBlob, "输入编码: blob|proto")
	return cmd
}

func newEncodeCommand(c *cli) *cobra.Command {
	var (
		input    recordInput
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "将记录编码为二进制块、protobuf 容器或 JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := input.load(c)
			if err != nil {
				return err
			}

			var out string
			switch encoding {
			case encodingBlob:
				blob := codec.ToBinaryBlob(record)
				out = hex.EncodeToString(blob[:])
			case encodingProto:
				out = hex.EncodeToString(codec.MarshalProtoWire(record))
			case encodingJSON:
				data, err := codec.MarshalWireJSON(record)
				if err != nil {
					return err
				}
				out = string(data)
			default:
				return fmt.Errorf("--format 仅支持 %s|%s|%s", encodingBlob, encodingProto, encodingJSON)
			}

			_, err = fmt.Fprintln(c.stdout, out)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input.path, "record", "r", "", "JSON 线上结构记录文件 (\"-\" 为标准输入)")
	f.StringVar(&input.blobHex, "blob", "", "96字节二进制块 (十六进制)")
	f.StringVar(&input.protoHex, "proto", "", "protobuf 容器 (十六进制)")
	f.StringVar(&encoding, "format", encodingBlob, "输出编码: blob|proto|json")
	return cmd
}
