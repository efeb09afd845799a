package taskqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTasksRunInSubmissionOrder(t *testing.T) {
	q := New(time.Second)
	defer q.Close()

	var mu sync.Mutex
	var got []int

	// earlier tasks sleep longer; without serialization the completion order
	// would invert
	waits := make([]<-chan error, 0, 4)
	for i := 0; i < 4; i++ {
		n := i
		delay := time.Duration(4-i) * 10 * time.Millisecond
		waits = append(waits, q.Enqueue(func(ctx context.Context) error {
			time.Sleep(delay)
			mu.Lock()
			got = append(got, n)
			mu.Unlock()
			return nil
		}))
	}
	for _, w := range waits {
		if err := <-w; err != nil {
			t.Fatalf("task error: %v", err)
		}
	}

	for i, n := range got {
		if n != i {
			t.Fatalf("execution order %v, want [0 1 2 3]", got)
		}
	}
}

func TestNextTaskWaitsForPrevious(t *testing.T) {
	q := New(time.Second)
	defer q.Close()

	release := make(chan struct{})
	firstDone := make(chan struct{})

	q.Enqueue(func(ctx context.Context) error {
		<-release
		close(firstDone)
		return nil
	})
	second := q.Enqueue(func(ctx context.Context) error {
		select {
		case <-firstDone:
			return nil
		default:
			return errors.New("started before predecessor finished")
		}
	})

	close(release)
	if err := <-second; err != nil {
		t.Fatal(err)
	}
}

func TestTimedOutTaskIsAbandonedAndQueueProceeds(t *testing.T) {
	q := New(20 * time.Millisecond)
	defer q.Close()

	stuck := q.Enqueue(func(ctx context.Context) error {
		time.Sleep(500 * time.Millisecond)
		return nil
	})
	next := q.Enqueue(func(ctx context.Context) error { return nil })

	if err := <-stuck; !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("stuck task err = %v, want deadline exceeded", err)
	}
	select {
	case err := <-next:
		if err != nil {
			t.Fatalf("next task err = %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("queue blocked behind abandoned task")
	}
}

func TestFailedTaskDoesNotPoisonTheQueue(t *testing.T) {
	q := New(time.Second)
	defer q.Close()

	boom := errors.New("boom")
	first := q.Enqueue(func(ctx context.Context) error { return boom })
	second := q.Enqueue(func(ctx context.Context) error { return nil })

	if err := <-first; !errors.Is(err, boom) {
		t.Fatalf("first err = %v, want boom", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("second err = %v, want nil", err)
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	q := New(time.Second)
	q.Close()

	if err := <-q.Enqueue(func(ctx context.Context) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}

func TestCloseDrainsQueuedTasks(t *testing.T) {
	q := New(time.Second)

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 8; i++ {
		q.Enqueue(func(ctx context.Context) error {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
	}
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	if ran != 8 {
		t.Fatalf("ran = %d, want 8", ran)
	}
}

func TestConcurrentProducers(t *testing.T) {
	q := New(time.Second)
	defer q.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				<-q.Enqueue(func(ctx context.Context) error {
					mu.Lock()
					total++
					mu.Unlock()
					return nil
				})
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if total != 160 {
		t.Fatalf("total = %d, want 160", total)
	}
}
