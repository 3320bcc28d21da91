package anywork

import (
	"sync"
)

// WorkGroup counts outstanding work like a sync.WaitGroup, but Wait can be
// called while more work is being added.
type WorkGroup interface {
	add()
	done()
	Wait()
}

type workgroup struct {
	sync.Mutex
	pending uint64
	idle    *sync.Cond
}

func NewGroup() WorkGroup {
	group := &workgroup{}
	group.idle = sync.NewCond(&group.Mutex)
	return group
}

func (it *workgroup) add() {
	it.Lock()
	defer it.Unlock()
	it.pending += 1
}

func (it *workgroup) done() {
	it.Lock()
	defer it.Unlock()
	if it.pending > 0 {
		it.pending -= 1
	}
	if it.pending == 0 {
		it.idle.Broadcast()
	}
}

func (it *workgroup) Wait() {
	it.Lock()
	defer it.Unlock()
	for it.pending > 0 {
		it.idle.Wait()
	}
}
