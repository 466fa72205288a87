// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Stage identifies the kind of a progress [Event].
type Stage int

// The progress stages emitted while generating a report.
const (
	DirectoryLoaded   Stage = iota // TLD directory is available.
	RecordIngested                 // one more e-mail observation was added.
	WorkersJoined                  // all resolver workers have terminated.
	DomainArchived                 // one unresolved domain was checked in the archive.
	ResolutionDone                 // the resolution phase has completed.
	ReportAssembled                // final projections are ready.
)

// String returns the clear-text representation of a Stage value.
func (s Stage) String() string {
	switch s {
	case DirectoryLoaded:
		return "directory-loaded"
	case RecordIngested:
		return "record-ingested"
	case WorkersJoined:
		return "workers-joined"
	case DomainArchived:
		return "domain-archived"
	case ResolutionDone:
		return "resolution-done"
	case ReportAssembled:
		return "report-assembled"
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// Event is a discrete progress tick. Done and Total are only meaningful for
// stages that repeat, otherwise they are zero.
type Event struct {
	Stage   Stage
	Done    int
	Total   int
	Subject string // record address or domain, if any.
}

// Sink consumes progress events. Sinks are always called synchronously from
// the goroutine driving the report generation.
type Sink func(Event)

// Emit sends an event to the sink, unless the sink is nil.
func (s Sink) Emit(ev Event) {
	if s != nil {
		s(ev)
	}
}
