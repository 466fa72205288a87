// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"sync"

	"github.com/siemens/maildig/types"
)

// progress keeps track of the most recent progress event per stage. Report
// runs update the progress from their own goroutine while the renderer reads
// snapshots from another one.
type progress struct {
	mu     sync.Mutex
	latest map[types.Stage]types.Event
	order  []types.Stage
}

func newProgress() *progress {
	return &progress{latest: map[types.Stage]types.Event{}}
}

// Update the progress with the specified event; usable as a [types.Sink].
func (p *progress) Update(ev types.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.latest[ev.Stage]; !ok {
		p.order = append(p.order, ev.Stage)
	}
	p.latest[ev.Stage] = ev
}

// Get returns the latest events of all stages seen so far, in the order the
// stages were first reached.
func (p *progress) Get() []types.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := make([]types.Event, 0, len(p.order))
	for _, stage := range p.order {
		events = append(events, p.latest[stage])
	}
	return events
}
