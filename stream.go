// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

import (
	"errors"
	"io"
	"sync"

	"github.com/gammazero/deque"
)

// DefaultChunkSize is the read granularity used by FromReader when the
// caller does not specify one.
const DefaultChunkSize = 32 * 1024

// ReadRequest is the callback contract a reader invokes to complete a read:
// exactly one of the three methods fires per Read call.
//
// Callbacks may run on the producer's call stack, at any time relative to
// the consumer's own execution. Implementations that hand work to consumer
// code must marshal it through a TaskDestination instead of running it in
// place. The chunk passed to OnChunk is only valid until the callback
// returns; borrow it by copying.
type ReadRequest interface {
	OnChunk(chunk []byte)
	OnClose()
	OnError(err error)
}

type streamState uint8

const (
	stateReadable streamState = iota
	stateClosed
	stateErrored
)

// ByteStream is a single-producer, pull-based sequence of byte chunks.
//
// The producer calls Push zero or more times, then exactly one of Close or
// Fail. Consumers acquire a StreamReader (at most one at a time) and issue
// reads; each read completes with exactly one ReadRequest callback, either
// synchronously when data or a terminal state is already available, or later
// from the producer's goroutine.
//
// The zero value is a readable, empty, unlocked stream. All methods are safe
// for concurrent use.
type ByteStream struct {
	mu      sync.Mutex
	chunks  deque.Deque[[]byte]
	pending deque.Deque[ReadRequest]
	state   streamState
	cause   error
	locked  bool
}

// NewByteStream returns an empty readable stream.
func NewByteStream() *ByteStream { return &ByteStream{} }

// Push appends chunk to the stream, or hands it directly to a pending read.
// The stream takes ownership of the slice; the producer must not reuse it
// after a pending read consumed it (the receiving ReadRequest sees it only
// for the duration of its OnChunk callback).
//
// Push returns ErrClosed after Close or Fail.
func (s *ByteStream) Push(chunk []byte) error {
	s.mu.Lock()
	if s.state != stateReadable {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.pending.Len() > 0 {
		req := s.pending.PopFront()
		s.mu.Unlock()
		req.OnChunk(chunk)
		return nil
	}
	s.chunks.PushBack(chunk)
	s.mu.Unlock()
	return nil
}

// Close marks the clean end of the stream. Chunks already pushed remain
// readable; pending reads complete with OnClose. Returns ErrClosed if a
// terminal state was already reached.
func (s *ByteStream) Close() error {
	s.mu.Lock()
	if s.state != stateReadable {
		s.mu.Unlock()
		return ErrClosed
	}
	s.state = stateClosed
	reqs := s.takePending()
	s.mu.Unlock()
	for _, req := range reqs {
		req.OnClose()
	}
	return nil
}

// Fail puts the stream into the errored state. Pending reads complete with
// OnError(err); chunks already pushed but not yet read are discarded.
// Returns ErrClosed if a terminal state was already reached.
func (s *ByteStream) Fail(err error) error {
	if err == nil {
		err = errors.New("bodyx: stream failed")
	}
	s.mu.Lock()
	if s.state != stateReadable {
		s.mu.Unlock()
		return ErrClosed
	}
	s.state = stateErrored
	s.cause = err
	s.chunks.Clear()
	reqs := s.takePending()
	s.mu.Unlock()
	for _, req := range reqs {
		req.OnError(err)
	}
	return nil
}

// takePending drains the pending-request queue. Caller holds s.mu.
func (s *ByteStream) takePending() []ReadRequest {
	if s.pending.Len() == 0 {
		return nil
	}
	reqs := make([]ReadRequest, 0, s.pending.Len())
	for s.pending.Len() > 0 {
		reqs = append(reqs, s.pending.PopFront())
	}
	return reqs
}

// GetReader acquires the stream's reader. At most one reader is active at a
// time; a second acquisition fails with ErrLocked until Release is called.
//
// Acquiring a reader on a closed or errored stream succeeds: reads drain any
// remaining chunks, then deliver the terminal event.
func (s *ByteStream) GetReader() (*StreamReader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return nil, ErrLocked
	}
	s.locked = true
	return &StreamReader{stream: s}, nil
}

// StreamReader is the exclusive read handle of a ByteStream.
type StreamReader struct {
	stream   *ByteStream
	released bool
}

// Read completes req with exactly one callback: OnChunk when a chunk is
// available (possibly synchronously, on this call stack), OnClose or OnError
// when the stream already reached its terminal state, or later, from the
// producer's goroutine, once the producer makes progress. Multiple
// outstanding reads complete in FIFO order.
func (r *StreamReader) Read(req ReadRequest) {
	if req == nil {
		panic("bodyx: nil ReadRequest")
	}
	s := r.stream
	s.mu.Lock()
	if r.released {
		s.mu.Unlock()
		req.OnError(ErrReleased)
		return
	}
	if s.chunks.Len() > 0 {
		chunk := s.chunks.PopFront()
		s.mu.Unlock()
		req.OnChunk(chunk)
		return
	}
	switch s.state {
	case stateClosed:
		s.mu.Unlock()
		req.OnClose()
	case stateErrored:
		cause := s.cause
		s.mu.Unlock()
		req.OnError(cause)
	default:
		s.pending.PushBack(req)
		s.mu.Unlock()
	}
}

// Release gives up the reader's lock so the stream can be read or teed
// again. Reads still pending at release time complete with
// OnError(ErrReleased). Release is idempotent.
func (r *StreamReader) Release() {
	s := r.stream
	s.mu.Lock()
	if r.released {
		s.mu.Unlock()
		return
	}
	r.released = true
	s.locked = false
	reqs := s.takePending()
	s.mu.Unlock()
	for _, req := range reqs {
		req.OnError(ErrReleased)
	}
}

// FromReader returns a ByteStream driven by a producer goroutine that reads
// src in chunks of at most chunkSize bytes (DefaultChunkSize when
// chunkSize <= 0). io.EOF closes the stream; any other error fails it.
//
// A (0, nil) read is treated as end of input rather than retried, to avoid
// hidden spinning inside a producer goroutine.
func FromReader(src io.Reader, chunkSize int) *ByteStream {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := NewByteStream()
	go func() {
		buf := make([]byte, chunkSize)
		for {
			nr, er := src.Read(buf)
			if nr > 0 {
				chunk := make([]byte, nr)
				copy(chunk, buf[:nr])
				if s.Push(chunk) != nil {
					return
				}
			}
			if er != nil {
				if er == io.EOF {
					s.Close()
				} else {
					s.Fail(er)
				}
				return
			}
			if nr == 0 {
				s.Close()
				return
			}
		}
	}()
	return s
}
