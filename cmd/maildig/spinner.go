// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Yet another (braille) spinner, spinning while the report stages progress.

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// brailleDots are the spinner phases.
const brailleDots = "⠉⠘⠰⠤⠆⠃"

// spinner is a blindingly simple spinner, with its phase advanced by a
// background ticker and read by the renderer at any time.
type spinner struct {
	phases []string
	phase  atomic.Int32
	done   chan struct{}
	once   sync.Once
}

// newSpinner returns a new spinner; later call the Start method to make it
// spinning, and the Stop method to stop it and release background resources.
func newSpinner() *spinner {
	s := &spinner{done: make(chan struct{})}
	for _, r := range brailleDots {
		s.phases = append(s.phases, string(r)+" ")
	}
	return s
}

// Spinner returns the spinner string for the current phase.
func (s *spinner) Spinner() string {
	return s.phases[s.phase.Load()]
}

// Start the spinner to spin in steps every specified interval.
func (s *spinner) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				next := s.phase.Load() + 1
				if int(next) >= len(s.phases) {
					next = 0
				}
				s.phase.Store(next)
			case <-s.done:
				return
			}
		}
	}()
}

// Stop the spinner and release the background resources; stopping an already
// stopped spinner is fine.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.done) })
}
