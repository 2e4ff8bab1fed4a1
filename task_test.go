// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"code.hybscloud.com/bodyx"
)

func TestTaskQueue_FIFO(t *testing.T) {
	q := bodyx.NewTaskQueue()
	defer q.Close()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		if err := q.Enqueue(bodyx.OpTask, func() { got = append(got, i) }); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	q.Flush()

	want := make([]int, 100)
	for i := range want {
		want[i] = i
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskQueue_CloseDrainsQueuedTasks(t *testing.T) {
	q := bodyx.NewTaskQueue()
	ran := 0
	for i := 0; i < 10; i++ {
		if err := q.Enqueue(bodyx.OpTask, func() { ran++ }); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	q.Close() // returns after the pump exits
	if ran != 10 {
		t.Fatalf("ran=%d want 10", ran)
	}
}

func TestTaskQueue_EnqueueAfterCloseDrops(t *testing.T) {
	var drops []bodyx.Op
	q := bodyx.NewTaskQueue(bodyx.WithDropPolicy(bodyx.DropFunc(func(op bodyx.Op, err error) {
		if !bodyx.IsDestinationClosed(err) {
			t.Errorf("drop err=%v", err)
		}
		drops = append(drops, op)
	})))
	q.Close()

	err := q.Enqueue(bodyx.OpProcessEndOfBody, func() { t.Error("task ran after close") })
	if !errors.Is(err, bodyx.ErrDestinationClosed) {
		t.Fatalf("want ErrDestinationClosed got %v", err)
	}
	if len(drops) != 1 || drops[0] != bodyx.OpProcessEndOfBody {
		t.Fatalf("drops=%v", drops)
	}
}

func TestTaskQueue_FlushOnClosedQueueReturns(t *testing.T) {
	q := bodyx.NewTaskQueue(bodyx.WithDropPolicy(bodyx.NopDropPolicy{}))
	q.Close()
	q.Flush() // must not hang
}

func TestTaskQueue_NilTaskPanics(t *testing.T) {
	q := bodyx.NewTaskQueue()
	defer q.Close()
	defer func() {
		if recover() == nil {
			t.Fatal("want panic on nil task")
		}
	}()
	q.Enqueue(bodyx.OpTask, nil)
}

func TestWithLogger_ReportsDropsOnClosedQueue(t *testing.T) {
	var buf bytes.Buffer
	q := bodyx.NewTaskQueue(bodyx.WithLogger(zerolog.New(&buf)))
	q.Close()

	if err := q.Enqueue(bodyx.OpContinue, func() {}); !errors.Is(err, bodyx.ErrDestinationClosed) {
		t.Fatalf("want ErrDestinationClosed got %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "Continue") {
		t.Fatalf("log output %q missing op", out)
	}
}

func TestLogDropPolicy_ReportsOpAndError(t *testing.T) {
	var buf bytes.Buffer
	p := bodyx.LogDropPolicy{Logger: zerolog.New(&buf)}
	p.OnDrop(bodyx.OpProcessBody, bodyx.ErrDestinationClosed)

	out := buf.String()
	for _, want := range []string{"ProcessBody", "task dropped", "destination closed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}

func TestOpString(t *testing.T) {
	cases := map[bodyx.Op]string{
		bodyx.OpTask:             "Task",
		bodyx.OpProcessBody:      "ProcessBody",
		bodyx.OpProcessBodyError: "ProcessBodyError",
		bodyx.OpProcessEndOfBody: "ProcessEndOfBody",
		bodyx.OpContinue:         "Continue",
		bodyx.Op(250):            "Op(unknown)",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Fatalf("Op(%d).String()=%q want %q", uint8(op), got, want)
		}
	}
}
