package out

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	mealsout "mealsync/internal/modules/meals/port/out"
	"mealsync/internal/ui/theme"
)

const bannerWidth = 60

// ConsoleReporter prints progress for a person watching the terminal.
// Styling degrades to plain text when out is not a terminal.
type ConsoleReporter struct {
	out    io.Writer
	styles theme.Styles
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		out:    out,
		styles: theme.For(lipgloss.NewRenderer(out)),
	}
}

var _ mealsout.Reporter = (*ConsoleReporter)(nil)

func (c *ConsoleReporter) Step(msg string) {
	_, _ = fmt.Fprintln(c.out, c.styles.Muted.Render(msg))
}

func (c *ConsoleReporter) Done(msg string) {
	_, _ = fmt.Fprintln(c.out, c.styles.OK.Render("✓ "+msg))
}

func (c *ConsoleReporter) Warn(msg string) {
	_, _ = fmt.Fprintln(c.out, c.styles.Warn.Render("WARNING: "+msg))
}

// Banner prints title between two rules.
func (c *ConsoleReporter) Banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	_, _ = fmt.Fprintln(c.out, rule)
	_, _ = fmt.Fprintln(c.out, c.styles.Title.Render(title))
	_, _ = fmt.Fprintln(c.out, rule)
}

func (c *ConsoleReporter) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}
