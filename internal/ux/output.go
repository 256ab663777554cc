package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jorge-barreto/relnotes/internal/transform"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Out receives all operator output. Stdout is reserved for documents and JSON.
var Out io.Writer = os.Stderr

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// BatchProgress prints per-entry transform progress.
type BatchProgress struct {
	W io.Writer
}

func (p BatchProgress) w() io.Writer {
	if p.W == nil {
		return Out
	}
	return p.W
}

func (p BatchProgress) Begin(kind transform.Kind, total int) {
	fmt.Fprintf(p.w(), "%s[%s]%s %sTransforming %d %s...%s\n",
		Dim, timestamp(), Reset, Cyan, total, plural(kind, total), Reset)
}

func (p BatchProgress) Entry(kind transform.Kind, index, total int, title string) {
	fmt.Fprintf(p.w(), "  %s %d/%d: %s...\n", label(kind), index+1, total, truncate(title, 50))
}

func (p BatchProgress) Outcome(o transform.Outcome) {
	if o.Transformed {
		return
	}
	fmt.Fprintf(p.w(), "  %s✗ Kept original %s: %v%s\n", Yellow, o.Kind, o.Err, Reset)
}

func (p BatchProgress) Done(r transform.Report) {
	color := Green
	if r.Fallbacks() > 0 {
		color = Yellow
	}
	fmt.Fprintf(p.w(), "%s[%s]%s  %s✓ Transformation complete: %d transformed, %d kept original (%s)%s\n",
		Dim, timestamp(), Reset, color, r.Transformed(), r.Fallbacks(), r.Duration.Round(time.Millisecond), Reset)
}

// Saved reports a written file.
func Saved(what, path string) {
	fmt.Fprintf(Out, "%s✓%s Saved %s to: %s\n", Green, Reset, what, path)
}

// Creating announces a page creation.
func Creating(name string) {
	fmt.Fprintf(Out, "Creating ClickUp page: %s%s%s\n", Bold, name, Reset)
}

// PageCreated prints the new page's ID and link.
func PageCreated(id, url string) {
	fmt.Fprintf(Out, "%s✓ Successfully created page with ID: %s%s\n", Green, id, Reset)
	fmt.Fprintf(Out, "%sPage URL:%s %s\n", Bold, Reset, url)
}

// PageName prints the identifier in a KEY=value form that workflow steps can capture.
func PageName(id string) {
	fmt.Fprintf(Out, "PAGE_NAME=%s\n", id)
}

// Warn prints a non-fatal warning.
func Warn(format string, args ...any) {
	fmt.Fprintf(Out, "%swarning:%s %s\n", Yellow, Reset, fmt.Sprintf(format, args...))
}

func label(kind transform.Kind) string {
	if kind == transform.KindImprovement {
		return "Improvement"
	}
	return "Feature"
}

func plural(kind transform.Kind, n int) string {
	s := strings.ToLower(label(kind))
	if n == 1 {
		return s
	}
	return s + "s"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
