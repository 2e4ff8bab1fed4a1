// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx_test

import (
	"testing"
	"time"

	"code.hybscloud.com/bodyx"
)

const waitTimeout = 2 * time.Second

// collector records one incremental-read session. Callbacks run on the task
// queue's pump goroutine; fields are read only after wait() observed the
// terminal callback.
type collector struct {
	chunks [][]byte
	ended  bool
	err    error
	done   chan struct{}
}

func newCollector() *collector { return &collector{done: make(chan struct{})} }

func (c *collector) onChunk(p []byte) { c.chunks = append(c.chunks, p) }

func (c *collector) onEnd() {
	c.ended = true
	close(c.done)
}

func (c *collector) onError(err error) {
	c.err = err
	close(c.done)
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(waitTimeout):
		t.Fatal("timeout waiting for read session")
	}
}

// fullyReadWait runs FullyRead and blocks until one callback fires.
func fullyReadWait(t *testing.T, b *bodyx.Body, dest bodyx.TaskDestination) ([]byte, error) {
	t.Helper()
	payload := make(chan []byte, 1)
	failed := make(chan error, 1)
	b.FullyRead(
		func(p []byte) { payload <- p },
		func(err error) { failed <- err },
		dest,
	)
	select {
	case p := <-payload:
		return p, nil
	case err := <-failed:
		return nil, err
	case <-time.After(waitTimeout):
		t.Fatal("timeout waiting for full read")
		return nil, nil
	}
}

// eventRecorder captures the single callback of one stream read.
type eventRecorder struct {
	events chan bodyx.ReadEvent
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{events: make(chan bodyx.ReadEvent, 8)}
}

func (r *eventRecorder) OnChunk(chunk []byte) {
	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	r.events <- bodyx.ReadEvent{Kind: bodyx.KindChunk, Chunk: buf}
}

func (r *eventRecorder) OnClose() { r.events <- bodyx.ReadEvent{Kind: bodyx.KindClose} }

func (r *eventRecorder) OnError(err error) {
	r.events <- bodyx.ReadEvent{Kind: bodyx.KindError, Err: err}
}

func (r *eventRecorder) next(t *testing.T) bodyx.ReadEvent {
	t.Helper()
	select {
	case ev := <-r.events:
		return ev
	case <-time.After(waitTimeout):
		t.Fatal("timeout waiting for read event")
		return bodyx.ReadEvent{}
	}
}

// inlineDest runs tasks on the caller's stack. It trades the deferred
// delivery guarantee for determinism, which is what loop-teardown tests
// need. failAfter > 0 makes Enqueue fail after that many accepted tasks.
type inlineDest struct {
	accepted  int
	failAfter int
	drops     []bodyx.Op
}

func (d *inlineDest) Enqueue(op bodyx.Op, task func()) error {
	if d.failAfter > 0 && d.accepted >= d.failAfter {
		d.drops = append(d.drops, op)
		return bodyx.ErrDestinationClosed
	}
	d.accepted++
	task()
	return nil
}
