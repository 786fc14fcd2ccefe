// 19 Sep 2026

// Package common has the odds and ends the commands share.
package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// ChainSep goes between the causes when an error is printed.
const ChainSep = " >> "

// CauseChain gives each level of a wrapped error, outermost first.
// Each level is printed without the text of the levels below it.
func CauseChain(err error) string {
	var parts []string
	for err != nil {
		next := errors.Unwrap(err)
		msg := err.Error()
		if next != nil {
			msg = strings.TrimSuffix(msg, next.Error())
			msg = strings.TrimRight(msg, ": ")
		}
		if msg != "" {
			parts = append(parts, msg)
		}
		err = next
	}
	return strings.Join(parts, ChainSep)
}

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	fTmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer fTmp.Close()
	if _, err := io.WriteString(fTmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", fTmp.Name(), err)
	}
	return fTmp.Name(), nil
}
