// Copyright (c) 2019-2020 The lume developers

package rx

import (
	l "github.com/ethereum/go-ethereum/log"
)

var log = l.New("module", "rx")

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger l.Logger) {
	log = logger
}
