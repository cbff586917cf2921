package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KimNorgaard/go-kvline"
	"github.com/KimNorgaard/go-kvline/internal/output"
	"github.com/KimNorgaard/go-kvline/pairs"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single stdin line.
const maxLineSize = 16 << 20

type inputLine struct {
	n    int
	text string
}

type result struct {
	line  int
	input string
	pairs *pairs.Map
	err   error
	done  bool
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [line...]",
		Short: "Parse key=value lines",
		Long: `Parse each argument as one line of key=value pairs. Without arguments,
lines are read from standard input and blank lines are skipped.`,
		Example: `  kvline parse 'name=Alice city="New York"'
  kvline parse --allow name --allow city --output json < records.txt`,
		RunE: runParse,
	}

	cmd.Flags().StringSlice("allow", nil, "allowed key; repeat to allow several (enables strict mode)")
	cmd.Flags().Bool("case-sensitive", false, "compare allowed keys case-sensitively")
	cmd.Flags().StringP("output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().IntP("jobs", "j", 1, "number of lines parsed concurrently")
	cmd.Flags().Bool("fail-fast", false, "stop at the first line that fails to parse")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := configFromContext(cmd)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	var lines []inputLine
	if len(args) > 0 {
		for i, a := range args {
			lines = append(lines, inputLine{n: i + 1, text: a})
		}
	} else if lines, err = readLines(cmd.InOrStdin()); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	p := kvline.NewParser()
	if cfg.Strict() {
		p = kvline.NewStrictParser(cfg.AllowedKeys, cfg.CaseSensitive)
	}

	results := make([]result, len(lines))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Jobs)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := p.Parse(line.text)
			results[i] = result{line: line.n, input: line.text, pairs: m, err: err, done: true}
			if err != nil && cfg.FailFast {
				return fmt.Errorf("line %d: %w", line.n, err)
			}
			return nil
		})
	}
	waitErr := g.Wait()

	failed := 0
	for _, r := range results {
		if !r.done {
			continue
		}
		if r.err != nil {
			failed++
			slog.Debug("line failed", "line", r.line, "error", r.err)
			output.ReportError(cmd.ErrOrStderr(), r.line, r.input, r.err)
			continue
		}
		slog.Debug("line parsed", "line", r.line, "pairs", r.pairs.Len())
		if err := output.Write(cmd.OutOrStdout(), format, r.pairs); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}

	if failed > 0 {
		slog.Warn("parse finished with failures", "failed", failed, "total", len(lines))
		return errLinesFailed
	}
	if waitErr != nil {
		return waitErr
	}
	return nil
}

func readLines(r io.Reader) ([]inputLine, error) {
	var lines []inputLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; sc.Scan(); n++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, inputLine{n: n, text: sc.Text()})
	}
	return lines, sc.Err()
}
