// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/siemens/maildig/types"
)

// renderer renders the terminal display, based on the progress events passed
// to its Render method.
type renderer struct {
	Indentation int
	w           io.Writer
	spinner     *spinner
}

// newRenderer returns a renderer rendering to the specified io.Writer.
func newRenderer(w io.Writer, spinnerInterval time.Duration) *renderer {
	sp := newSpinner()
	sp.Start(spinnerInterval)
	return &renderer{
		Indentation: 3,
		w:           w,
		spinner:     sp,
	}
}

// Stop the renderer's background ticker.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render the given stage progress. The last stage is considered to be still
// in progress, unless it is the final stage.
func (r *renderer) Render(events []types.Event) {
	if len(events) == 0 {
		fmt.Fprintln(r.w, "loading TLD directory...")
		return
	}
	for idx, ev := range events {
		active := idx == len(events)-1 && ev.Stage != types.ReportAssembled
		r.renderStage(ev, active)
	}
}

// renderStage renders a single line for the specified stage.
func (r *renderer) renderStage(ev types.Event, active bool) {
	text := stageText(ev)
	if active {
		fmt.Fprintf(r.w, "%-*s%s\n", r.Indentation, "",
			activeStageStyle.Styled(r.spinner.Spinner()+text))
		return
	}
	fmt.Fprintf(r.w, "%-*s%s\n", r.Indentation, "", doneStageStyle.Styled("✔ "+text))
}

// stageText returns a human-readable description of a stage's progress.
func stageText(ev types.Event) string {
	switch ev.Stage {
	case types.DirectoryLoaded:
		return "TLD directory loaded"
	case types.RecordIngested:
		return fmt.Sprintf("ingested %d/%d e-mail addresses %s",
			ev.Done, ev.Total, subjectStyle.Styled(ev.Subject))
	case types.WorkersJoined:
		return fmt.Sprintf("looked up %d domains", ev.Total)
	case types.DomainArchived:
		return fmt.Sprintf("cross-checked %d/%d unresolved domains in the web archive %s",
			ev.Done, ev.Total, subjectStyle.Styled(ev.Subject))
	case types.ResolutionDone:
		return fmt.Sprintf("%d of %d domains resolved", ev.Done, ev.Total)
	case types.ReportAssembled:
		return "report assembled"
	}
	return ev.Stage.String()
}

// renderSummary renders the final counts of a report.
func renderSummary(w io.Writer, res *reportSummary) {
	fmt.Fprintf(w, "%d e-mail addresses, %d valid\n", res.Records, res.ValidEmails)
	if res.Checked {
		fmt.Fprintf(w, "%d domains resolved, %s\n", res.Resolved,
			failedStyle.Styled(fmt.Sprintf("%d unresolved", res.Unresolved)))
	}
}

// reportSummary are the final counts of a report.
type reportSummary struct {
	Records     int
	ValidEmails int
	Checked     bool
	Resolved    int
	Unresolved  int
}
