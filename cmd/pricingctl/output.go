package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// Format 输出格式
type Format string

const (
	// FormatJSON 单行JSON
	FormatJSON Format = "json"
	// FormatPretty 美化JSON
	FormatPretty Format = "pretty"
	// FormatTable 终端表格（默认）
	FormatTable Format = "table"
)

// ParseFormat 解析输出格式
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatPretty, FormatTable:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("未知输出格式: %q", s)
	}
}

// Tabular 可按表格渲染的输出
type Tabular interface {
	// TableRows 首行为表头
	TableRows() [][]string
}

// Formatter 输出格式化器
//
// 数据写到 stdout，诊断日志由 zap 写到 stderr，两者互不干扰。
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{format: format, writer: writer}
}

// Print 按格式输出
//
// 表格格式下，未实现 Tabular 的数据降级为美化JSON。
func (f *Formatter) Print(data interface{}) error {
	switch f.format {
	case FormatJSON:
		return f.printJSON(data, false)
	case FormatTable:
		if t, ok := data.(Tabular); ok {
			return f.printTable(t.TableRows())
		}
		return f.printJSON(data, true)
	default:
		return f.printJSON(data, true)
	}
}

// printJSON 打印JSON格式
func (f *Formatter) printJSON(data interface{}, pretty bool) error {
	var (
		output []byte
		err    error
	)
	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := fmt.Fprintln(f.writer, string(output)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printTable 使用 pterm 渲染表格
func (f *Formatter) printTable(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
