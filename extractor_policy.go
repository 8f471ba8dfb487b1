package fsdoc

import "go.uber.org/zap"

type UnknownPolicy int

const (
	UnknownDrop  UnknownPolicy = iota // skip silently
	UnknownAudit                      // skip, but emit SkippedEvent and a debug log
)

type Extractor struct {
	reg       *Registry
	policy    UnknownPolicy
	typeTag   string
	formatter Formatter
	sink      EventSink
	log       *zap.Logger
}
