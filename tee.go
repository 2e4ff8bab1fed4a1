// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

// Tee splits the stream into two branches that independently observe the
// same chunk sequence and the same terminal event. Reads on one branch are
// invisible to and non-blocking for the other; a slow branch buffers,
// unbounded, until it catches up.
//
// Tee is all-or-nothing: a stream with an active, uncompleted reader cannot
// be teed (ErrTeeLocked), and on failure no branch is created. On success
// the source stream is permanently locked by the internal pump; consume the
// data through the branches from then on.
//
// Teeing a stream that already reached its terminal state succeeds: both
// branches replay any undelivered chunks, then close or error accordingly.
func (s *ByteStream) Tee() (*ByteStream, *ByteStream, error) {
	r, err := s.GetReader()
	if err != nil {
		return nil, nil, ErrTeeLocked
	}
	b1, b2 := NewByteStream(), NewByteStream()
	go teePump(r, b1, b2)
	return b1, b2, nil
}

// teePump drives the source reader and mirrors every event to both
// branches. awaitRequest copies each chunk before the producer regains the
// buffer, so one copy can safely back both branches: branch consumers only
// ever borrow it during their own OnChunk callbacks.
func teePump(r *StreamReader, b1, b2 *ByteStream) {
	req := newAwaitRequest()
	for {
		switch ev := req.next(r); ev.Kind {
		case KindChunk:
			b1.Push(ev.Chunk)
			b2.Push(ev.Chunk)
		case KindClose:
			b1.Close()
			b2.Close()
			return
		case KindError:
			b1.Fail(ev.Err)
			b2.Fail(ev.Err)
			return
		}
	}
}
