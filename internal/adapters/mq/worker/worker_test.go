package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"

	"github.com/okian/astrohero/internal/adapters/mq/queue"
	"github.com/okian/astrohero/internal/adapters/mq/worker"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type job = worker.Job[int, int]

var errOdd = errors.New("odd input")

func square(_ context.Context, n int) (int, error) {
	if n%2 != 0 {
		return 0, errOdd
	}
	return n * n, nil
}

func TestPool(t *testing.T) {
	Convey("Given a pool of three workers over a queue", t, func() {
		q := queue.NewInMemoryQueue[job](queue.WithCapacity(16))
		pool := worker.NewPool[int, int](q, worker.ProcessorFunc[int, int](square),
			worker.WithWorkers(3), worker.WithShutdownTimeout(time.Second))
		So(pool.Size(), ShouldEqual, 3)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)
		pool.Start(ctx)

		Convey("Every job gets exactly one reply carrying its index", func() {
			const n = 10
			replies := make(chan worker.Result[int], n)
			for i := 0; i < n; i++ {
				ok := q.Enqueue(ctx, job{ID: "job", Index: i, Payload: i, Reply: replies})
				So(ok, ShouldBeTrue)
			}

			got := make([]worker.Result[int], n)
			for i := 0; i < n; i++ {
				select {
				case r := <-replies:
					got[r.Index] = r
				case <-time.After(2 * time.Second):
					t.Fatal("timed out waiting for replies")
				}
			}
			for i, r := range got {
				if i%2 == 0 {
					So(r.Err, ShouldBeNil)
					So(r.Value, ShouldEqual, i*i)
				} else {
					So(errors.Is(r.Err, errOdd), ShouldBeTrue)
				}
			}
			So(pool.Shutdown(context.Background()), ShouldBeNil)
		})

		Convey("Shutdown drains jobs already queued", func() {
			replies := make(chan worker.Result[int], 4)
			for i := 0; i < 4; i++ {
				So(q.Enqueue(ctx, job{Index: i, Payload: 2, Reply: replies}), ShouldBeTrue)
			}
			So(pool.Shutdown(context.Background()), ShouldBeNil)
			So(len(replies), ShouldEqual, 4)
			So(q.IsClosed(), ShouldBeTrue)
			So(pool.Shutdown(context.Background()), ShouldBeNil)
		})

		Convey("Jobs without a reply channel are still processed", func() {
			So(q.Enqueue(ctx, job{Payload: 4}), ShouldBeTrue)
			So(pool.Shutdown(context.Background()), ShouldBeNil)
		})
	})
}

func TestPoolShutdownTimeout(t *testing.T) {
	Convey("Given a worker stuck on a slow job", t, func() {
		q := queue.NewInMemoryQueue[job](queue.WithCapacity(1))
		var started atomic.Bool
		slow := worker.ProcessorFunc[int, int](func(ctx context.Context, n int) (int, error) {
			started.Store(true)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		pool := worker.NewPool[int, int](q, slow, worker.WithWorkers(1),
			worker.WithShutdownTimeout(50*time.Millisecond))
		pool.Start(context.Background())

		So(q.Enqueue(context.Background(), job{Payload: 1}), ShouldBeTrue)
		for !started.Load() {
			time.Sleep(time.Millisecond)
		}

		Convey("Shutdown gives up after the timeout and cancels the worker", func() {
			err := pool.Shutdown(context.Background())
			So(errors.Is(err, worker.ErrShutdownTimeout), ShouldBeTrue)
		})
	})
}
