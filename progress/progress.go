// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package progress reports per-batch progress of a pass.
package progress

import (
	"io"

	"github.com/born-ml/fit/internal/progress"
)

// Field is one key=value pair shown next to a progress bar.
type Field = progress.Field

// Fields is an ordered list of progress fields.
type Fields = progress.Fields

// Sink receives one Advance per processed chunk.
type Sink = progress.Sink

// Factory opens a Sink for a pass of total chunks.
type Factory = progress.Factory

// Nop returns a Factory whose sinks discard everything.
func Nop() Factory {
	return progress.Nop()
}

// Bar returns a Factory drawing terminal progress bars on w. With leave
// unset, finished bars are cleared.
func Bar(w io.Writer, leave bool) Factory {
	return progress.Bar(w, leave)
}
