package transform

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/relnotes/internal/release"
)

// Kind names the two entry kinds that are rewritten.
type Kind string

const (
	KindFeature     Kind = "feature"
	KindImprovement Kind = "improvement"
)

// Outcome records what happened to one entry.
type Outcome struct {
	Kind        Kind
	Index       int
	Title       string
	Transformed bool
	// Err is the service error or decode error behind a fallback.
	Err      error
	Duration time.Duration
}

// Report collects the outcomes of a batch in processing order.
type Report struct {
	Outcomes []Outcome
	Duration time.Duration
}

// Transformed counts entries rewritten from a service response.
func (r Report) Transformed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Transformed {
			n++
		}
	}
	return n
}

// Fallbacks counts entries kept in their original form.
func (r Report) Fallbacks() int {
	return len(r.Outcomes) - r.Transformed()
}

// Progress receives batch events for operator display.
type Progress interface {
	Begin(kind Kind, total int)
	Entry(kind Kind, index, total int, title string)
	Outcome(o Outcome)
	Done(r Report)
}

type nopProgress struct{}

func (nopProgress) Begin(Kind, int) {}
func (nopProgress) Entry(Kind, int, int, string) {}
func (nopProgress) Outcome(Outcome) {}
func (nopProgress) Done(Report) {}

// Batch rewrites every feature, then every improvement, one call at a time
// and in input order. A failing entry is kept in its original form and the
// batch moves on. Bug fixes pass through. Duration is not carried over; callers
// that render the result must restore it from the input record.
func (t *Transformer) Batch(ctx context.Context, rec release.Record, p Progress) (release.Record, Report) {
	if p == nil {
		p = nopProgress{}
	}
	start := time.Now()

	out := release.Record{
		Date:         rec.Date,
		Release:      rec.Release,
		DateRange:    rec.DateRange,
		NewFeatures:  make([]release.Feature, 0, len(rec.NewFeatures)),
		Improvements: make([]release.Improvement, 0, len(rec.Improvements)),
		BugFixes:     append([]release.BugFix{}, rec.BugFixes...),
	}
	var rep Report

	if n := len(rec.NewFeatures); n > 0 {
		p.Begin(KindFeature, n)
		for i, f := range rec.NewFeatures {
			p.Entry(KindFeature, i, n, f.Title)
			began := time.Now()
			res, err := t.Feature(ctx, f)
			o := t.settle(KindFeature, i, f.Title, res.Transformed, res.Err, err)
			o.Duration = time.Since(began)
			if o.Transformed {
				out.NewFeatures = append(out.NewFeatures, res.Entry)
			} else {
				out.NewFeatures = append(out.NewFeatures, f)
			}
			rep.Outcomes = append(rep.Outcomes, o)
			p.Outcome(o)
		}
	}

	if n := len(rec.Improvements); n > 0 {
		p.Begin(KindImprovement, n)
		for i, imp := range rec.Improvements {
			p.Entry(KindImprovement, i, n, imp.Title)
			began := time.Now()
			res, err := t.Improvement(ctx, imp)
			o := t.settle(KindImprovement, i, imp.Title, res.Transformed, res.Err, err)
			o.Duration = time.Since(began)
			if o.Transformed {
				out.Improvements = append(out.Improvements, res.Entry)
			} else {
				out.Improvements = append(out.Improvements, imp)
			}
			rep.Outcomes = append(rep.Outcomes, o)
			p.Outcome(o)
		}
	}

	rep.Duration = time.Since(start)
	p.Done(rep)
	return out, rep
}

// settle folds a call error and a decode error into one Outcome.
func (t *Transformer) settle(kind Kind, i int, title string, transformed bool, decodeErr, callErr error) Outcome {
	o := Outcome{Kind: kind, Index: i, Title: title, Transformed: transformed, Err: decodeErr}
	if callErr != nil {
		t.logger().Error("transform failed, keeping original",
			zap.String("kind", string(kind)),
			zap.Int("index", i),
			zap.String("title", title),
			zap.Error(callErr),
		)
		o.Transformed = false
		o.Err = callErr
	}
	return o
}
