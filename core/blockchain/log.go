// Copyright (c) 2019-2020 The lume developers

package blockchain

import (
	l "github.com/ethereum/go-ethereum/log"
)

// log is the package logger.  It defaults to a child of the root logger;
// the embedding node can swap it for its own via UseLogger.
var log = l.New("module", "blockchain")

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger l.Logger) {
	log = logger
}
