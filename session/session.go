// Package session keeps the ordered list of open command panels and runs
// their commands against the backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/payload"
)

var (
	ErrNoCommand  = errors.New("panel has no command")
	ErrNoResponse = errors.New("backend gave no response")
)

type ID uint64

func (it ID) String() string {
	return fmt.Sprintf("#%d", uint64(it))
}

// Invoker performs one command call.
type Invoker interface {
	Invoke(ctx context.Context, path string, params url.Values) (payload.Response, error)
}

type Entry struct {
	ID       ID
	Cmd      *catalog.CommandNode
	Params   url.Values
	Response payload.Response
	Runs     int

	generation uint64
}

func (it *Entry) snapshot() *Entry {
	copied := *it
	copied.Params = cloneValues(it.Params)
	return &copied
}

// Completion reports how one call ended. Applied is false when the panel
// was removed, reset or run again before the answer arrived.
type Completion struct {
	ID       ID
	Path     string
	Params   url.Values
	Response payload.Response
	Err      error
	Started  time.Time
	Elapsed  common.Duration
	Applied  bool
}

// Call performs the network part of a run. It may be executed on any
// goroutine.
type Call func() Completion

type List struct {
	sync.Mutex
	invoker   Invoker
	entries   []*Entry
	counter   uint64
	observers []func(Completion)
}

func NewList(invoker Invoker) *List {
	return &List{
		invoker: invoker,
		entries: make([]*Entry, 0, 8),
	}
}

// OnComplete registers an observer that sees every finished call, applied
// or not. Observers run on the goroutine that executed the call.
func (it *List) OnComplete(observer func(Completion)) {
	it.Lock()
	defer it.Unlock()

	it.observers = append(it.observers, observer)
}

// Add appends a panel for cmd with empty params and no response.
func (it *List) Add(cmd *catalog.CommandNode) ID {
	it.Lock()
	defer it.Unlock()

	it.counter += 1
	entry := &Entry{
		ID:     ID(it.counter),
		Cmd:    cmd,
		Params: url.Values{},
	}
	it.entries = append(it.entries, entry)
	return entry.ID
}

func (it *List) find(id ID) (int, *Entry) {
	for at, entry := range it.entries {
		if entry.ID == id {
			return at, entry
		}
	}
	return -1, nil
}

// FindByID returns a snapshot of the panel with the given id.
func (it *List) FindByID(id ID) (*Entry, bool) {
	it.Lock()
	defer it.Unlock()

	_, entry := it.find(id)
	if entry == nil {
		return nil, false
	}
	return entry.snapshot(), true
}

// RemoveByID drops the panel, keeping the order of the others. Unknown ids
// are ignored.
func (it *List) RemoveByID(id ID) {
	it.Lock()
	defer it.Unlock()

	at, entry := it.find(id)
	if entry == nil {
		return
	}
	it.entries = append(it.entries[:at], it.entries[at+1:]...)
}

// ResetByID clears params and response. A call still in flight for the
// panel will not write its answer.
func (it *List) ResetByID(id ID) bool {
	it.Lock()
	defer it.Unlock()

	_, entry := it.find(id)
	if entry == nil {
		return false
	}
	entry.generation += 1
	entry.Params = url.Values{}
	entry.Response = nil
	return true
}

// SetParam stores the values of one argument. No values, or only empty
// ones, remove the argument from the query.
func (it *List) SetParam(id ID, name string, values ...string) bool {
	it.Lock()
	defer it.Unlock()

	_, entry := it.find(id)
	if entry == nil {
		return false
	}
	kept := make([]string, 0, len(values))
	for _, value := range values {
		if len(value) > 0 {
			kept = append(kept, value)
		}
	}
	if len(kept) == 0 {
		entry.Params.Del(name)
	} else {
		entry.Params[name] = kept
	}
	return true
}

func (it *List) Len() int {
	it.Lock()
	defer it.Unlock()

	return len(it.entries)
}

// Entries returns snapshots of all panels in display order.
func (it *List) Entries() []*Entry {
	it.Lock()
	defer it.Unlock()

	result := make([]*Entry, 0, len(it.entries))
	for _, entry := range it.entries {
		result = append(result, entry.snapshot())
	}
	return result
}

// RunByID marks the panel as processing and returns the call that fetches
// its answer. The params are captured now, later edits do not affect the
// call.
func (it *List) RunByID(ctx context.Context, id ID) (Call, bool) {
	it.Lock()
	_, entry := it.find(id)
	if entry == nil {
		it.Unlock()
		return nil, false
	}
	entry.generation += 1
	entry.Runs += 1
	entry.Response = payload.Processing{}
	generation := entry.generation
	command := entry.Cmd
	params := cloneValues(entry.Params)
	it.Unlock()

	return func() Completion {
		return it.perform(ctx, id, generation, command, params)
	}, true
}

// Run is RunByID followed directly by the call.
func (it *List) Run(ctx context.Context, id ID) (Completion, bool) {
	call, ok := it.RunByID(ctx, id)
	if !ok {
		return Completion{}, false
	}
	return call(), true
}

func (it *List) perform(ctx context.Context, id ID, generation uint64, command *catalog.CommandNode, params url.Values) Completion {
	completion := Completion{
		ID:      id,
		Params:  params,
		Started: time.Now(),
	}
	stopwatch := common.Stopwatch("Panel %s call took", id)
	var response payload.Response
	var err error
	if command == nil {
		err = ErrNoCommand
	} else {
		completion.Path = command.Path
		response, err = it.invoker.Invoke(ctx, command.Path, params)
		if err == nil && response == nil {
			err = ErrNoResponse
		}
	}
	completion.Elapsed = stopwatch.Debug()
	if err != nil {
		common.Uncritical(fmt.Sprintf("panel %s %s", id, completion.Path), err)
		response = payload.Unsuccessful()
	}
	completion.Response = response
	completion.Err = err
	completion.Applied = it.complete(id, generation, response)
	it.notify(completion)
	return completion
}

func (it *List) complete(id ID, generation uint64, response payload.Response) bool {
	it.Lock()
	defer it.Unlock()

	_, entry := it.find(id)
	if entry == nil {
		common.Debug("Panel %s is gone, dropping its answer.", id)
		return false
	}
	if entry.generation != generation {
		common.Debug("Panel %s has a newer call, dropping stale answer.", id)
		return false
	}
	entry.Response = response
	return true
}

func (it *List) notify(completion Completion) {
	it.Lock()
	observers := make([]func(Completion), len(it.observers))
	copy(observers, it.observers)
	it.Unlock()

	for _, observer := range observers {
		observer(completion)
	}
}

func cloneValues(values url.Values) url.Values {
	result := make(url.Values, len(values))
	for name, list := range values {
		result[name] = append([]string(nil), list...)
	}
	return result
}
