package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"facalc"
)

// renderer turns evaluation outcomes into the strings the shell displays.
// Color handling follows the calculator convention: green results, red
// errors, magenta scope notices, cyan help.
type renderer struct {
	prec      int
	promptStr string

	result lipgloss.Style
	errs   lipgloss.Style
	notice lipgloss.Style
	help   lipgloss.Style
	prompt lipgloss.Style
	border lipgloss.Style
	title  lipgloss.Style
}

func newRenderer(cfg *Config) *renderer {
	r := &renderer{
		prec:      cfg.Precision,
		promptStr: cfg.Prompt,
		result:    lipgloss.NewStyle(),
		errs:      lipgloss.NewStyle(),
		notice:    lipgloss.NewStyle(),
		help:      lipgloss.NewStyle(),
		prompt:    lipgloss.NewStyle(),
		border:    lipgloss.NewStyle(),
		title:     lipgloss.NewStyle(),
	}
	color := cfg.Color == "always" || (cfg.Color == "auto" && termenv.ColorProfile() != termenv.Ascii)
	if color {
		r.result = r.result.Foreground(lipgloss.Color("10")).Bold(true)
		r.errs = r.errs.Foreground(lipgloss.Color("9")).Bold(true)
		r.notice = r.notice.Foreground(lipgloss.Color("13")).Bold(true)
		r.help = r.help.Foreground(lipgloss.Color("14")).Bold(true)
		r.prompt = r.prompt.Foreground(lipgloss.Color("11")).Bold(true)
		r.border = r.border.Foreground(lipgloss.Color("12")).Bold(true)
		r.title = r.title.Foreground(lipgloss.Color("13")).Bold(true)
	}
	return r
}

// formatValue renders a numeric result.
func (r *renderer) formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', r.prec, 64)
}

// renderOutcome returns the display text for an outcome. Assignments and
// screen clears are silent and render as the empty string.
func (r *renderer) renderOutcome(oc facalc.Outcome) string {
	switch oc.Kind {
	case facalc.OutcomeValue:
		return r.result.Render("Result: " + r.formatValue(oc.Value))
	case facalc.OutcomeCaseStart:
		return r.notice.Render("Case started. Variables now local to this case.")
	case facalc.OutcomeCaseEnd:
		return r.notice.Render("Case ended. Previous variables restored.")
	default:
		return ""
	}
}

func (r *renderer) renderError(err error) string {
	return r.errs.Render("Error: " + err.Error())
}

func (r *renderer) renderPrompt() string {
	return r.prompt.Render(r.promptStr)
}

func (r *renderer) clearScreen() {
	termenv.DefaultOutput().ClearScreen()
}

const bannerWidth = 60

func (r *renderer) banner(w io.Writer) {
	border := r.border.Render(repeat('=', bannerWidth))
	center := lipgloss.NewStyle().Width(bannerWidth).Align(lipgloss.Center)
	fmt.Fprintln(w, border)
	fmt.Fprintln(w, center.Render(r.title.Render("FINANCIAL CALCULATOR")))
	fmt.Fprintln(w, center.Render(r.help.Render(
		"Type mathematical expressions, finance factors, or commands.\n"+
			"Type 'help' for instructions, 'cls' to clear, 'case' to start a scoped session.")))
	fmt.Fprintln(w, border)
}

func repeat(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

// replay re-prints the transcript after the screen is cleared on endcase.
func (r *renderer) replay(w io.Writer, entries []facalc.Entry) {
	for _, e := range entries {
		if e.In != "" {
			fmt.Fprintln(w, r.prompt.Render(r.promptStr+e.In))
		}
		if e.Out != "" {
			fmt.Fprintln(w, e.Out)
		}
	}
}

const helpText = `Enter an expression, an assignment, or a command.

Factors (first argument is the interest rate, in percent when literal):
  F_P(i, n)   F given P = (1+i)^n
  P_F(i, n)   P given F = (1+i)^-n
  P_A(i, n)   P given A = (1 - (1+i)^-n)/i
  A_P(i, n)   A given P = i(1+i)^n / ((1+i)^n - 1)
  F_A(i, n)   F given A = ((1+i)^n - 1)/i
  A_F(i, n)   A given F = i / ((1+i)^n - 1)
  A_G(i, n)   A given arithmetic gradient G
  P_G(i, n)   P given arithmetic gradient G

Notes:
  - Enter interest as a percentage: A_P(2.5%, 10) or A_P(2.5, 10).
  - i = 0 is handled with the correct limit formulas.
  - 'x = 43%' stores 0.43; a bare 'x' prints the value.
  - 'case' opens a scope with local variables, 'endcase' closes it.
  - 'cls' clears the screen, 'factors' shows the factor table,
    'quit' or 'exit' leaves.`

func (r *renderer) renderHelp() string {
	return r.help.Render(helpText)
}

// factorTable writes the factor reference as a table.
func factorTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Factor", "Converts", "Formula", "i = 0 limit"})
	t.AppendRows([]table.Row{
		{"F_P", "P -> F", "(1+i)^n", "1"},
		{"P_F", "F -> P", "(1+i)^-n", "1"},
		{"P_A", "A -> P", "(1 - (1+i)^-n)/i", "n"},
		{"A_P", "P -> A", "i(1+i)^n / ((1+i)^n - 1)", "1/n"},
		{"F_A", "A -> F", "((1+i)^n - 1)/i", "n"},
		{"A_F", "F -> A", "i / ((1+i)^n - 1)", "1/n"},
		{"A_G", "G -> A", "1/i - n/((1+i)^n - 1)", "(n-1)/2"},
		{"P_G", "G -> P", "A_G(i,n) * P_A(i,n)", "n(n-1)/2"},
	})
	t.Render()
}
