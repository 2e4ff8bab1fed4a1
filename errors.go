// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

import "errors"

// bodyx error taxonomy.
//
// Mental model:
//   - Lock errors (ErrLocked, ErrTeeLocked): the stream is exclusively held;
//     the caller raced another consumer or asked to duplicate mid-read.
//   - ErrChunkType: the producer handed the stream something that is not a
//     well-formed byte view.
//   - ErrDestinationClosed: a callback could not be delivered because its
//     task destination was torn down first.
//
// Producer failures passed to ByteStream.Fail are not wrapped; they surface
// unchanged through error callbacks.

// ErrLocked reports a failed reader acquisition: the stream already has an
// active reader. Release the existing reader before acquiring another.
var ErrLocked = errors.New("bodyx: stream is locked to a reader")

// ErrTeeLocked reports a failed tee or clone: the stream has an active,
// uncompleted reader. Teeing is all-or-nothing; neither branch is created.
var ErrTeeLocked = errors.New("bodyx: cannot tee a stream with an active reader")

// ErrClosed reports a producer operation (Push, Close, Fail) on a stream
// that already reached its terminal state.
var ErrClosed = errors.New("bodyx: stream already closed or errored")

// ErrReleased reports a read issued on, or still pending with, a reader
// whose lock has been released.
var ErrReleased = errors.New("bodyx: reader released")

// ErrChunkType reports a produced unit that is not a well-formed byte view.
// End-of-stream is a separate signal (OnClose), so a nil chunk is a producer
// protocol violation, not a terminator.
var ErrChunkType = errors.New("bodyx: chunk is not a byte sequence")

// ErrDestinationClosed reports an enqueue on a task destination that has
// been closed. Delivery is best-effort; see DropPolicy for how drops are
// reported.
var ErrDestinationClosed = errors.New("bodyx: task destination closed")

// IsLock reports whether err is a lock conflict: either a failed reader
// acquisition or a failed tee/clone (including wrapped forms).
func IsLock(err error) bool {
	return errors.Is(err, ErrLocked) || errors.Is(err, ErrTeeLocked)
}

// IsBadChunk reports whether err carries the malformed-chunk condition
// (ErrChunkType and wrappers, via errors.Is).
func IsBadChunk(err error) bool { return errors.Is(err, ErrChunkType) }

// IsDestinationClosed reports whether err indicates a task destination that
// was torn down before delivery (ErrDestinationClosed and wrappers).
func IsDestinationClosed(err error) bool { return errors.Is(err, ErrDestinationClosed) }
