// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

// ReadEventKind tags the outcome of a single read: exactly one of a chunk,
// a clean end of stream, or a producer failure.
type ReadEventKind uint8

const (
	// KindChunk: the read produced a chunk; more events may follow.
	KindChunk ReadEventKind = iota

	// KindClose: the stream ended cleanly. Terminal.
	KindClose

	// KindError: the producer failed the stream. Terminal.
	KindError
)

func (k ReadEventKind) String() string {
	switch k {
	case KindChunk:
		return "Chunk"
	case KindClose:
		return "Close"
	case KindError:
		return "Error"
	default:
		return "ReadEventKind(unknown)"
	}
}

// ReadEvent is the tagged form of the ReadRequest callback contract:
// Chunk is set for KindChunk, Err for KindError.
//
// Unlike the raw OnChunk callback, the Chunk field of an event produced by
// awaitRequest is a private copy and stays valid after the producer returns.
type ReadEvent struct {
	Kind  ReadEventKind
	Chunk []byte
	Err   error
}

// awaitRequest adapts the callback-style ReadRequest contract to a blocking
// receive, for engines that drive a reader from their own goroutine (the tee
// pump, the full-read assembler).
//
// The channel is buffered for one event so the stream driver never blocks on
// delivery. One awaitRequest serves at most one outstanding read at a time.
type awaitRequest chan ReadEvent

func newAwaitRequest() awaitRequest { return make(awaitRequest, 1) }

func (a awaitRequest) OnChunk(chunk []byte) {
	// Copy before the producer gets the buffer back. A nil chunk stays nil
	// so that byte-view validation downstream still sees the violation.
	var buf []byte
	if chunk != nil {
		buf = make([]byte, len(chunk))
		copy(buf, chunk)
	}
	a <- ReadEvent{Kind: KindChunk, Chunk: buf}
}

func (a awaitRequest) OnClose() { a <- ReadEvent{Kind: KindClose} }

func (a awaitRequest) OnError(err error) { a <- ReadEvent{Kind: KindError, Err: err} }

// next issues one read on r and blocks until its event arrives.
func (a awaitRequest) next(r *StreamReader) ReadEvent {
	r.Read(a)
	return <-a
}
