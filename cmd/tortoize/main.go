// 20 Sep 2026

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/andrew-torda/tortoize/pkg/common"
)

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		os.Exit(common.ExitSuccess)
	}
	fmt.Fprintln(os.Stderr, common.CauseChain(err))
	var ue *usageError
	if errors.As(err, &ue) {
		os.Exit(common.ExitUsageError)
	}
	os.Exit(common.ExitFailure)
}
