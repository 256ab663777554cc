// Package render turns a release record into the canonical markdown document.
// Rendering is total: every absent field has a defined output.
package render

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/relnotes/internal/release"
)

// Defaults for the feature attribute table.
const (
	DefaultPlatform = "Web"
	DefaultPlan     = "All Plans"
	DefaultChannel  = "All"
)

const (
	Title         = "# What's New?"
	NoBugFixes    = "N/A"
	SignOff       = "**That's all for today, See you in the next release note!**"
	separator     = "---\n\n"
	attributeHead = "| | |\n|---|---|\n"
)

// Markdown renders rec.
func Markdown(rec release.Record) string {
	var b strings.Builder

	b.WriteString(Title + "\n\n")
	fmt.Fprintf(&b, "**Date:** %s | **Release:** %s | From %s [%s]\n\n",
		rec.Date, rec.Release, rec.DateRange, rec.Duration)
	b.WriteString(separator)

	if len(rec.NewFeatures) > 0 {
		b.WriteString("## New Features\n\n")
		for i, f := range rec.NewFeatures {
			writeFeature(&b, i, f)
		}
	}

	if len(rec.Improvements) > 0 {
		b.WriteString("## Other Improvements\n\n")
		for i, imp := range rec.Improvements {
			writeImprovement(&b, i, imp)
		}
	}

	b.WriteString("## Bug Fixes\n\n")
	if len(rec.BugFixes) == 0 {
		b.WriteString(NoBugFixes + "\n")
	}
	for _, fix := range rec.BugFixes {
		writeBugFix(&b, fix)
	}

	b.WriteString("\n" + separator)
	b.WriteString(SignOff)
	return b.String()
}

func writeFeature(b *strings.Builder, index int, f release.Feature) {
	fmt.Fprintf(b, "### %d. %s\n\n", index+1, f.Title)

	b.WriteString(attributeHead)
	fmt.Fprintf(b, "| **Platform** | %s |\n", valueOr(f.Platform, DefaultPlatform))
	fmt.Fprintf(b, "| **Plan** | %s |\n", valueOr(f.Plan, DefaultPlan))
	fmt.Fprintf(b, "| **Channel** | %s |\n\n", valueOr(f.Channel, DefaultChannel))

	if f.Description != "" {
		b.WriteString(f.Description + "\n\n")
	}
	if f.Overview != "" {
		fmt.Fprintf(b, "#### Overview\n\n%s\n\n", f.Overview)
	}

	if len(f.Capabilities) > 0 {
		b.WriteString("#### Key Capabilities\n\n")
		for _, c := range f.Capabilities {
			writeCapability(b, c)
		}
		b.WriteString("\n")
	}

	writeWhatsNew(b, f.WhatsNew)
	b.WriteString(separator)
}

func writeCapability(b *strings.Builder, c release.Capability) {
	if c.Group == nil {
		fmt.Fprintf(b, "- %s\n", c.Text)
		return
	}
	if c.Group.Title == "" {
		return
	}
	fmt.Fprintf(b, "**%s**\n", c.Group.Title)
	writeBullets(b, c.Group.Items)
	b.WriteString("\n")
}

func writeImprovement(b *strings.Builder, index int, imp release.Improvement) {
	fmt.Fprintf(b, "### %d. %s\n\n", index+1, imp.Title)

	if imp.Overview != "" {
		fmt.Fprintf(b, "#### Overview\n\n%s\n\n", imp.Overview)
	}
	if imp.Description != "" {
		b.WriteString(imp.Description + "\n\n")
	}
	if imp.Endpoint != "" {
		fmt.Fprintf(b, "**Endpoint:** %s\n\n", imp.Endpoint)
	}

	writeWhatsNew(b, imp.WhatsNew)

	for i, d := range imp.Details {
		fmt.Fprintf(b, "**%d. %s**\n\n", i+1, d.Title)
		if d.Description != "" {
			b.WriteString(d.Description + "\n\n")
		}
	}

	b.WriteString(separator)
}

// writeWhatsNew is shared between features and improvements.
func writeWhatsNew(b *strings.Builder, items []release.WhatsNewItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString("#### What's New\n\n")
	for i, item := range items {
		fmt.Fprintf(b, "**%d. %s**\n\n", i+1, item.Title)
		if item.Description != "" {
			b.WriteString(item.Description + "\n")
		}
		writeBullets(b, item.Items)
		b.WriteString("\n")
	}
}

func writeBugFix(b *strings.Builder, fix release.BugFix) {
	if fix.Entry == nil {
		fmt.Fprintf(b, "- %s\n", fix.Text)
		return
	}
	if fix.Entry.Title == "" {
		return
	}
	fmt.Fprintf(b, "- **%s**: %s\n", fix.Entry.Title, fix.Entry.Description)
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func valueOr(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
