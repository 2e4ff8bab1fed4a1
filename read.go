// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

// FullyRead reads the body to completion and delivers the result through
// dest: processBody with the whole payload on success, processError on
// failure. Exactly one of the two fires, exactly once, always via dest and
// never on this call stack.
//
// When the body has a pre-materialized source, its bytes are copied and
// delivered without touching the stream. Otherwise FullyRead acquires the
// stream's reader (an acquisition failure is delivered through
// processError) and accumulates chunks until close or error; on error no
// partial payload is delivered. After a stream-backed full read completes,
// the stream is exhausted and stays locked.
//
// A nil destination or nil callback is a caller error and panics.
func (b *Body) FullyRead(processBody func([]byte), processError func(error), dest TaskDestination) {
	checkReadArgs(processError, dest)
	if processBody == nil {
		panic("bodyx: nil processBody callback")
	}

	success := func(payload []byte) {
		dest.Enqueue(OpProcessBody, func() { processBody(payload) })
	}
	failure := func(err error) {
		dest.Enqueue(OpProcessBodyError, func() { processError(err) })
	}

	if b.source != nil {
		src := b.source.Bytes()
		payload := make([]byte, len(src))
		copy(payload, src)
		success(payload)
		return
	}

	r, err := b.stream.GetReader()
	if err != nil {
		failure(err)
		return
	}
	go readAllBytes(r, success, failure)
}

// readAllBytes drives r to completion, accumulating chunks. It runs the
// incremental loop with OnChunk appending to a local buffer: chunk order is
// preserved, and a terminal event hands off exactly once.
func readAllBytes(r *StreamReader, success func([]byte), failure func(error)) {
	payload := []byte{}
	req := newAwaitRequest()
	for {
		switch ev := req.next(r); ev.Kind {
		case KindChunk:
			if ev.Chunk == nil {
				failure(ErrChunkType)
				return
			}
			payload = append(payload, ev.Chunk...)
		case KindClose:
			success(payload)
			return
		case KindError:
			failure(ev.Err)
			return
		}
	}
}

// IncrementallyRead reads the body one chunk at a time, delivering each
// through dest: processChunk per chunk in producer order, then exactly one
// of processEnd (clean close) or processError (producer failure or a
// malformed chunk). No chunk callback is queued after the terminal
// callback.
//
// IncrementallyRead acquires exactly one reader; if the stream is already
// locked it returns ErrLocked synchronously and no callback fires. The
// session holds the reader until its terminal event.
//
// Delivery of each chunk re-arms the next read only after the chunk's
// continuation has executed on dest, so the producer can never run ahead of
// the consumer by more than one queued continuation. If dest is closed
// mid-session the loop stops re-arming and releases the reader; the drop is
// reported per the destination's policy.
//
// A nil destination or nil callback is a caller error and panics.
func (b *Body) IncrementallyRead(processChunk func([]byte), processEnd func(), processError func(error), dest TaskDestination) error {
	checkReadArgs(processError, dest)
	if processChunk == nil {
		panic("bodyx: nil processChunk callback")
	}
	if processEnd == nil {
		panic("bodyx: nil processEnd callback")
	}

	r, err := b.stream.GetReader()
	if err != nil {
		return err
	}
	req := &incrementalReadRequest{
		reader:       r,
		dest:         dest,
		processChunk: processChunk,
		processEnd:   processEnd,
		processError: processError,
	}
	r.Read(req)
	return nil
}

// incrementalReadRequest is the self-re-arming read request behind
// IncrementallyRead. Each completed read queues a continuation on the task
// destination; the chunk continuation issues the next read on the same
// reader after delivering its chunk, which is what makes it a loop.
type incrementalReadRequest struct {
	reader       *StreamReader
	dest         TaskDestination
	processChunk func([]byte)
	processEnd   func()
	processError func(error)
}

func (q *incrementalReadRequest) OnChunk(chunk []byte) {
	var cont func()
	if chunk == nil {
		// Not a well-formed byte view: terminal, no re-arm.
		cont = func() { q.processError(ErrChunkType) }
	} else {
		buf := make([]byte, len(chunk))
		copy(buf, chunk)
		cont = func() {
			q.processChunk(buf)
			q.reader.Read(q)
		}
	}
	if q.dest.Enqueue(OpContinue, cont) != nil {
		q.reader.Release()
	}
}

func (q *incrementalReadRequest) OnClose() {
	if q.dest.Enqueue(OpProcessEndOfBody, q.processEnd) != nil {
		q.reader.Release()
	}
}

func (q *incrementalReadRequest) OnError(err error) {
	if q.dest.Enqueue(OpProcessBodyError, func() { q.processError(err) }) != nil {
		q.reader.Release()
	}
}

func checkReadArgs(processError func(error), dest TaskDestination) {
	if dest == nil {
		panic("bodyx: nil task destination")
	}
	if processError == nil {
		panic("bodyx: nil processError callback")
	}
}
