// Package progress renders a single in-place progress line.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Line writes an updating progress line to w, typically stderr.
type Line struct {
	w         io.Writer
	label     string
	start     time.Time
	lastWidth int
}

// NewLine creates a progress line with the given label.
func NewLine(w io.Writer, label string) *Line {
	return &Line{
		w:     w,
		label: label,
		start: time.Now(),
	}
}

// Update redraws the line as "label: done/total [rate/s]". A total of
// zero or less renders only the running count.
func (l *Line) Update(done, total int) {
	elapsed := time.Since(l.start).Seconds()

	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed
	}

	var line string
	if total > 0 {
		line = fmt.Sprintf("%s: %d/%d [%.1f/s]", l.label, done, total, rate)
	} else {
		line = fmt.Sprintf("%s: %d [%.1f/s]", l.label, done, rate)
	}

	// Pad so a shorter redraw fully covers the previous line.
	width := runewidth.StringWidth(line)
	if width < l.lastWidth {
		line += strings.Repeat(" ", l.lastWidth-width)
	} else {
		l.lastWidth = width
	}

	fmt.Fprintf(l.w, "\r%s", line)
}

// Finish terminates the progress line with a newline.
func (l *Line) Finish() {
	fmt.Fprintln(l.w)
}
