package ux

import (
	"fmt"
	"io"

	"github.com/jorge-barreto/relnotes/internal/runlog"
)

// RenderRun prints the summary of a finished run.
func RenderRun(w io.Writer, run *runlog.Run, recordPath string) {
	fmt.Fprintf(w, "\n%sRun:%s      %s\n", Bold, Reset, run.ID)
	if run.Identifier != "" {
		fmt.Fprintf(w, "%sRelease:%s  %s\n", Bold, Reset, run.Identifier)
	}
	if run.Model != "" {
		fmt.Fprintf(w, "%sModel:%s    %s/%s\n", Bold, Reset, run.Provider, run.Model)
	}

	statusColor := Green
	switch run.Status {
	case runlog.StatusPartial:
		statusColor = Yellow
	case runlog.StatusFailed:
		statusColor = Red
	}
	fmt.Fprintf(w, "%sStatus:%s   %s%s%s%s (%s)\n", Bold, Reset, statusColor, Bold, run.Status, Reset, run.Duration)

	if len(run.Entries) > 0 {
		fmt.Fprintf(w, "\n%sEntries:%s\n", Bold, Reset)
		for _, e := range run.Entries {
			mark := fmt.Sprintf("%sdone%s", Green, Reset)
			if e.Outcome == runlog.OutcomeFallback {
				mark = fmt.Sprintf("%skept%s", Yellow, Reset)
			}
			fmt.Fprintf(w, "  %s%-11s %d%s  %-40s %s  %s(%s)%s\n",
				Dim, e.Kind, e.Index+1, Reset, truncate(e.Title, 40), mark, Dim, e.Duration, Reset)
			if e.Reason != "" {
				fmt.Fprintf(w, "      %s%s%s\n", Dim, e.Reason, Reset)
			}
		}
	}

	if run.Output != "" || run.PageID != "" || recordPath != "" {
		fmt.Fprintf(w, "\n%sArtifacts:%s\n", Bold, Reset)
		if run.Output != "" {
			fmt.Fprintf(w, "  %s\n", run.Output)
		}
		if run.PageID != "" {
			fmt.Fprintf(w, "  page %s\n", run.PageID)
		}
		if recordPath != "" {
			fmt.Fprintf(w, "  %s\n", recordPath)
		}
	}
	fmt.Fprintln(w)
}
