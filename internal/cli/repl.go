package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"facalc"
)

// replCommands are the shell-level commands offered by completion alongside
// the session's own names.
var replCommands = []string{"case", "cls", "endcase", "exit", "factors", "help", "quit"}

func runREPL(cmd *cobra.Command, cfg *Config) error {
	out := cmd.OutOrStdout()
	r := newRenderer(cfg)
	sess := facalc.NewSession()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.renderPrompt(),
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    &completer{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r.clearScreen()
	r.banner(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Pure shell commands; everything else goes to the session.
		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Fprintln(out, r.notice.Render("Goodbye!"))
			return nil
		case "help":
			help := r.renderHelp()
			fmt.Fprintln(out, help)
			sess.Record(line, help)
			continue
		case "factors":
			var b strings.Builder
			factorTable(&b)
			fmt.Fprint(out, b.String())
			sess.Record(line, strings.TrimRight(b.String(), "\n"))
			continue
		}

		oc, err := sess.Eval(line)
		if err != nil {
			msg := r.renderError(err)
			fmt.Fprintln(out, msg)
			sess.Record(line, msg)
			continue
		}
		switch oc.Kind {
		case facalc.OutcomeCleared:
			r.clearScreen()
		case facalc.OutcomeCaseStart:
			r.clearScreen()
			msg := r.renderOutcome(oc)
			fmt.Fprintln(out, msg)
			sess.Record(line, msg)
		case facalc.OutcomeCaseEnd:
			r.clearScreen()
			msg := r.renderOutcome(oc)
			fmt.Fprintln(out, msg)
			r.replay(out, sess.Transcript())
			sess.Record(line, msg)
		case facalc.OutcomeAssign:
			// Silent on success.
			sess.Record(line, "")
		case facalc.OutcomeValue:
			msg := r.renderOutcome(oc)
			fmt.Fprintln(out, msg)
			sess.Record(line, msg)
		}
	}
	return nil
}

// completer suggests builtin functions, shell commands, and the variables of
// the current scope. It consults the session on every keystroke, so names
// assigned during the session complete too.
type completer struct {
	sess *facalc.Session
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && wordRune(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	var out [][]rune
	for _, n := range append(c.sess.Names(), replCommands...) {
		if strings.HasPrefix(n, word) {
			out = append(out, []rune(n[len(word):]))
		}
	}
	return out, pos - start
}

func wordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
