// pricingctl 定价记录准入命令行工具
//
// 使用方式:
//
//	pricingctl validate --record record.json --protocol-version 21 --block-timestamp 1700000000 --prev-timestamp 1699999880
//	pricingctl replay --file blocks.yaml
//	pricingctl decode --format blob <hex>
//	pricingctl encode --format proto --record record.json
//	pricingctl key inspect oracle.pem
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/weisyn/pricing/pkg/types"
)

// 退出码
const (
	exitOK       = 0
	exitFailure  = 1
	exitRejected = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run 执行命令并返回退出码
//
// 记录被拒绝时退出码为2，结论已由命令自身输出。
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root, c := newRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if finishErr := c.finish(); err == nil {
		err = finishErr
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, types.ErrPricingRecordRejected):
		return exitRejected
	default:
		fmt.Fprint(stderr, pterm.Error.Sprintln(err.Error()))
		return exitFailure
	}
}
