// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

import (
	"os"

	"github.com/rs/zerolog"
)

// Op identifies which unit of work was being queued to a TaskDestination.
//
// This is intentionally coarse-grained: it lets a DropPolicy (and log
// output) distinguish a lost completion callback from a lost loop
// continuation without inspecting the task itself.
type Op uint8

const (
	// OpTask is plain caller-submitted work with no body-read role.
	OpTask Op = iota

	// OpProcessBody is the success callback of a full read.
	OpProcessBody

	// OpProcessBodyError is the error callback of a full or incremental read.
	OpProcessBodyError

	// OpProcessEndOfBody is the end-of-body callback of an incremental read.
	OpProcessEndOfBody

	// OpContinue is an incremental-read continuation: deliver one chunk,
	// then re-arm the next read.
	OpContinue
)

func (op Op) String() string {
	switch op {
	case OpTask:
		return "Task"
	case OpProcessBody:
		return "ProcessBody"
	case OpProcessBodyError:
		return "ProcessBodyError"
	case OpProcessEndOfBody:
		return "ProcessEndOfBody"
	case OpContinue:
		return "Continue"
	default:
		return "Op(unknown)"
	}
}

// DropPolicy decides how a TaskQueue reports work that could not be queued
// because the destination was already closed. The task itself is always
// discarded; delivery after teardown is best-effort by contract.
//
// OnDrop runs on the caller's goroutine and must not block.
type DropPolicy interface {
	OnDrop(op Op, err error)
}

// DropFunc adapts a function to a DropPolicy.
type DropFunc func(op Op, err error)

func (f DropFunc) OnDrop(op Op, err error) { f(op, err) }

// NopDropPolicy discards dropped tasks silently.
type NopDropPolicy struct{}

func (NopDropPolicy) OnDrop(Op, error) {}

// LogDropPolicy reports each dropped task as a structured warning.
// The zero value discards (a zero zerolog.Logger is disabled).
type LogDropPolicy struct {
	Logger zerolog.Logger
}

func (p LogDropPolicy) OnDrop(op Op, err error) {
	p.Logger.Warn().Str("op", op.String()).Err(err).Msg("task dropped")
}

// defaultDropPolicy makes teardown drops visible rather than silent.
func defaultDropPolicy() DropPolicy {
	return LogDropPolicy{Logger: zerolog.New(os.Stderr).With().Timestamp().Logger()}
}
