// Package runlog persists one JSON record per transform run. A record is
// written once, after the batch finishes.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/relnotes/internal/transform"
)

const (
	StatusCompleted = "completed" // every entry transformed
	StatusPartial   = "partial"   // at least one entry kept its original form
	StatusFailed    = "failed"
)

const (
	OutcomeTransformed = "transformed"
	OutcomeFallback    = "fallback"
)

type Entry struct {
	Kind     string `json:"kind"`
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Outcome  string `json:"outcome"`
	Reason   string `json:"reason,omitempty"`
	Duration string `json:"duration"`
}

type Run struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	Input      string    `json:"input"`
	Release    string    `json:"release"`
	Identifier string    `json:"identifier,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	Model      string    `json:"model,omitempty"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end,omitempty"`
	Duration   string    `json:"duration,omitempty"`

	Transformed int     `json:"transformed"`
	Fallbacks   int     `json:"fallbacks"`
	Entries     []Entry `json:"entries"`

	Output string `json:"output,omitempty"`
	PageID string `json:"page_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// New starts a run record with a fresh ID.
func New(command, input string) *Run {
	return &Run{
		ID:      uuid.NewString(),
		Command: command,
		Input:   input,
		Start:   time.Now(),
		Entries: []Entry{},
	}
}

// Record copies a batch report into the run and closes its timing.
func (r *Run) Record(rep transform.Report) {
	r.Entries = make([]Entry, 0, len(rep.Outcomes))
	for _, o := range rep.Outcomes {
		e := Entry{
			Kind:     string(o.Kind),
			Index:    o.Index,
			Title:    o.Title,
			Outcome:  OutcomeTransformed,
			Duration: formatDuration(o.Duration),
		}
		if !o.Transformed {
			e.Outcome = OutcomeFallback
			if o.Err != nil {
				e.Reason = o.Err.Error()
			}
		}
		r.Entries = append(r.Entries, e)
	}
	r.Transformed = rep.Transformed()
	r.Fallbacks = rep.Fallbacks()
	r.Status = StatusCompleted
	if r.Fallbacks > 0 {
		r.Status = StatusPartial
	}
	r.finish()
}

// Fail marks the run failed with err.
func (r *Run) Fail(err error) {
	r.Status = StatusFailed
	r.Error = err.Error()
	r.finish()
}

func (r *Run) finish() {
	r.End = time.Now()
	r.Duration = formatDuration(r.End.Sub(r.Start))
}

// Path is where Save writes the run inside dir.
func (r *Run) Path(dir string) string {
	return filepath.Join(dir, r.ID+".json")
}

// Save writes the run to dir/<id>.json, creating dir if needed.
func (r *Run) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating runs dir %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	path := r.Path(dir)
	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing run record: %w", err)
	}
	return path, nil
}

// Load reads a run record.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Run
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing run record %s: %w", path, err)
	}
	return &r, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}
