package errors

import (
	"fmt"
	"strings"
)

// InitError is a database bootstrap failure tagged with the step that failed.
type InitError struct {
	Stage  Stage
	Target string // path or table name the step was working on
	Cause  error
}

// Stage identifies one step of the bootstrap sequence.
type Stage int

const (
	StageDirectory Stage = iota
	StageConnect
	StageInspect
	StageSchema
	StageSeed
	StageCommit
)

func (e *InitError) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage.String())
	if e.Target != "" {
		fmt.Fprintf(&b, ": %s", e.Target)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (%v)", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying storage or filesystem error.
func (e *InitError) Unwrap() error {
	return e.Cause
}

// New builds an InitError. A nil cause returns nil so call sites can wrap unconditionally.
func New(stage Stage, target string, cause error) error {
	if cause == nil {
		return nil
	}
	return &InitError{Stage: stage, Target: target, Cause: cause}
}

func (s Stage) String() string {
	switch s {
	case StageDirectory:
		return "create directory"
	case StageConnect:
		return "connect"
	case StageInspect:
		return "inspect schema"
	case StageSchema:
		return "create schema"
	case StageSeed:
		return "seed"
	case StageCommit:
		return "commit"
	default:
		return "init"
	}
}
