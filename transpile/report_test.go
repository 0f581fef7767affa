package transpile

import (
	"bytes"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/errors"
)

func TestReportRender(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	report := &Report{
		Results: []Result{
			{Job: Job{Input: "a.swift", Output: "a.kt"}, Fixmes: 2, Duration: 3 * time.Millisecond},
			{Job: Job{Input: "b.swift", Output: "b.kt"}, Err: errors.New("boom")},
		},
		Duration: 5 * time.Millisecond,
	}
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 2, report.Fixmes())

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "a.swift")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "2 files, 1 failed, 2 FIXMEs in 5ms")
}

func TestReportSummary(t *testing.T) {
	report := &Report{
		RunID: "run-1",
		Results: []Result{
			{Job: Job{Input: "a.swift", Output: "a.kt"}, Fixmes: 1},
			{Job: Job{Input: "b.swift", Output: "b.kt"}, Err: errors.New("boom")},
		},
		Duration: 1500 * time.Microsecond,
	}
	s := report.Summary()
	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Fixmes)
	assert.Equal(t, int64(1), s.DurationMS)
	assert.Equal(t, ResultSummary{Input: "b.swift", Output: "b.kt", Error: "boom"}, s.Results[1])
}
