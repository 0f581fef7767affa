package transpile

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
)

// Result is the outcome of one job.
type Result struct {
	Job
	Fixmes   int
	Duration time.Duration
	// Err is a per-file failure: a parse error or a formatter error.
	Err error
	// Kotlin holds the translation when streaming to stdout.
	Kotlin string
}

// Report summarizes a run.
type Report struct {
	RunID    string
	Results  []Result
	Duration time.Duration
}

// Failed counts files with a per-file error.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Fixmes counts unsupported-construct markers across all outputs.
func (r *Report) Fixmes() int {
	n := 0
	for _, res := range r.Results {
		n += res.Fixmes
	}
	return n
}

// Render writes a table of per-file results followed by a summary line.
func (r *Report) Render(w io.Writer) error {
	data := pterm.TableData{{"Input", "Output", "FIXMEs", "Time", "Status"}}
	for _, res := range r.Results {
		status := pterm.Green("ok")
		if res.Err != nil {
			status = pterm.Red(res.Err.Error())
		}
		data = append(data, []string{
			res.Input,
			res.Output,
			fmt.Sprint(res.Fixmes),
			res.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%d files, %d failed, %d FIXMEs in %s\n",
		table, len(r.Results), r.Failed(), r.Fixmes(), r.Duration.Round(time.Millisecond))
	return err
}

// Summary is the JSON form of a Report.
type Summary struct {
	RunID      string          `json:"run_id"`
	Files      int             `json:"files"`
	Failed     int             `json:"failed"`
	Fixmes     int             `json:"fixmes"`
	DurationMS int64           `json:"duration_ms"`
	Results    []ResultSummary `json:"results"`
}

// ResultSummary is the JSON form of a Result.
type ResultSummary struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Fixmes int    `json:"fixmes"`
	Error  string `json:"error,omitempty"`
}

// Summary flattens r for JSON output.
func (r *Report) Summary() Summary {
	s := Summary{
		RunID:      r.RunID,
		Files:      len(r.Results),
		Failed:     r.Failed(),
		Fixmes:     r.Fixmes(),
		DurationMS: r.Duration.Milliseconds(),
		Results:    make([]ResultSummary, len(r.Results)),
	}
	for i, res := range r.Results {
		s.Results[i] = ResultSummary{Input: res.Input, Output: res.Output, Fixmes: res.Fixmes}
		if res.Err != nil {
			s.Results[i].Error = res.Err.Error()
		}
	}
	return s
}
