package cadence

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// objectPool interpolates objects in parallel. Each object lands in exactly
// one chunk per tick, so its chain and sequences are only ever touched by one
// worker. Workers are reused across ticks until close stops them.
type objectPool struct {
	pool    worker.DynamicWorkerPool
	workers int
	closed  bool
}

// poolQueueSize accommodates a few chunks per worker with headroom.
const poolQueueSize = 256

func newObjectPool(workers int) *objectPool {
	return &objectPool{
		pool:    worker.NewDynamicWorkerPool(workers, poolQueueSize, 1*time.Second),
		workers: workers,
	}
}

// run calls fn on every object and returns once all calls are done. A
// WaitGroup is the per-tick barrier; pool.Wait blocks until every worker is
// idle, which is unsuitable at frame rate.
func (p *objectPool) run(objs []*LevelObject, fn func(*LevelObject)) {
	if len(objs) == 0 {
		return
	}
	chunk := (len(objs) + p.workers - 1) / p.workers
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(objs); start += chunk {
		part := objs[start:min(start+chunk, len(objs))]
		wg.Add(1)
		id := taskID
		taskID++
		p.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for _, o := range part {
					fn(o)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// close stops the workers. The pool must not be used afterwards.
func (p *objectPool) close() {
	if p.closed {
		return
	}
	p.closed = true
	p.pool.Stop()
}
