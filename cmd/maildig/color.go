// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	activeStageStyle = termenv.Style{}.Foreground(termenv.ANSIYellow)
	doneStageStyle   = termenv.Style{}.Foreground(termenv.ANSIGreen)
	failedStyle      = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var subjectStyle = termenv.Style{}.Bold()
