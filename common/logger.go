// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"fmt"
	"math/big"

	"github.com/ipfs/go-log"
)

const LoggerName = "dhlab"

var Logger = log.Logger(LoggerName)

// SetLogLevel accepts the go-log level names: debug, info, warn, error, dpanic, panic, fatal.
func SetLogLevel(level string) error {
	return log.SetLogLevel(LoggerName, level)
}

// FormatBigInt renders a in decimal, eliding the middle digits of very large values
// so that debug logs stay readable when a caller passes an arbitrary-precision secret.
func FormatBigInt(a *big.Int) string {
	if a == nil {
		return "<nil>"
	}
	s := a.String()
	if len(s) <= 24 {
		return s
	}
	return fmt.Sprintf("%s…%s(%d digits)", s[:10], s[len(s)-10:], len(s))
}

func BigIntsToString(array []*big.Int) string {
	r := ""
	for a, b := range array {
		r = fmt.Sprintf("%s %d:%s ", r, a, FormatBigInt(b))
	}
	return r
}
