package release

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var htmlTagRe = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)

// StripHTML returns a copy of rec whose prose fields have HTML markup
// converted to Markdown. Fields without tags are left untouched.
func StripHTML(rec Record) (Record, error) {
	out := rec
	out.NewFeatures = make([]Feature, len(rec.NewFeatures))
	for i, f := range rec.NewFeatures {
		f, err := stripFeature(f)
		if err != nil {
			return Record{}, fmt.Errorf("feature %d: %w", i+1, err)
		}
		out.NewFeatures[i] = f
	}
	out.Improvements = make([]Improvement, len(rec.Improvements))
	for i, imp := range rec.Improvements {
		imp, err := stripImprovement(imp)
		if err != nil {
			return Record{}, fmt.Errorf("improvement %d: %w", i+1, err)
		}
		out.Improvements[i] = imp
	}
	out.BugFixes = make([]BugFix, len(rec.BugFixes))
	for i, b := range rec.BugFixes {
		var err error
		if b.Entry == nil {
			b.Text, err = toMarkdown(b.Text)
		} else {
			e := *b.Entry
			e.Description, err = toMarkdown(e.Description)
			b.Entry = &e
		}
		if err != nil {
			return Record{}, fmt.Errorf("bug fix %d: %w", i+1, err)
		}
		out.BugFixes[i] = b
	}
	return out, nil
}

func stripFeature(f Feature) (Feature, error) {
	var err error
	for _, field := range []*string{&f.Description, &f.Overview} {
		if *field, err = toMarkdown(*field); err != nil {
			return Feature{}, err
		}
	}
	if f.WhatsNew, err = stripWhatsNew(f.WhatsNew); err != nil {
		return Feature{}, err
	}
	return f, nil
}

func stripImprovement(imp Improvement) (Improvement, error) {
	var err error
	for _, field := range []*string{&imp.Description, &imp.Overview} {
		if *field, err = toMarkdown(*field); err != nil {
			return Improvement{}, err
		}
	}
	if imp.WhatsNew, err = stripWhatsNew(imp.WhatsNew); err != nil {
		return Improvement{}, err
	}
	imp.Details = slices.Clone(imp.Details)
	for i := range imp.Details {
		if imp.Details[i].Description, err = toMarkdown(imp.Details[i].Description); err != nil {
			return Improvement{}, err
		}
	}
	return imp, nil
}

func stripWhatsNew(items []WhatsNewItem) ([]WhatsNewItem, error) {
	out := slices.Clone(items)
	for i := range out {
		desc, err := toMarkdown(out[i].Description)
		if err != nil {
			return nil, err
		}
		out[i].Description = desc
	}
	return out, nil
}

func toMarkdown(s string) (string, error) {
	if !htmlTagRe.MatchString(s) {
		return s, nil
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
