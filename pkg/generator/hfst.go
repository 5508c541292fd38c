package generator

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kballard/go-shellquote"

	"github.com/matzehuels/paradigms/pkg/errors"
)

// unknownSuffix marks an analysis the transducer could not realize.
const unknownSuffix = "+?"

// ParseLookupOutput reads the output format of hfst-optimized-lookup:
//
//	atim+N+A+Sg	atim	0.000000
//	atim+N+A+Obv	atimwa	0.000000
//	atim+N+A+Obv	atimwah	0.000000
//
//	xyz+N+A+Sg	xyz+N+A+Sg+?	inf
//
// Each result line is input, output and an optional weight, TAB separated.
// Blank lines separate inputs. An output ending in "+?" means the input has
// no form; the input is still recorded with an empty slice.
func ParseLookupOutput(r io.Reader) (Static, error) {
	out := make(Static)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || len(fields) > 3 || fields[0] == "" {
			return nil, errors.New(errors.ErrCodeGenerator, "lookup output line %d: want 2 or 3 tab-separated fields, got %q", lineNo, line)
		}
		analysis, form := fields[0], fields[1]
		if _, ok := out[analysis]; !ok {
			out[analysis] = nil
		}
		if form == "" || strings.HasSuffix(form, unknownSuffix) {
			continue
		}
		out[analysis] = append(out[analysis], form)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerator, err, "read lookup output")
	}
	return out, nil
}

// LoadLookupFile parses a saved hfst-optimized-lookup run. It is how
// precomputed paradigms are served without the transducer installed.
func LoadLookupFile(path string) (Static, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "lookup file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLookupOutput(f)
}

// Command drives an external lookup program, typically
//
//	hfst-optimized-lookup --quiet generator.hfstol
//
// Each BulkLookup call starts the program once, writes every analysis on its
// own line to stdin, and parses stdout with [ParseLookupOutput].
type Command struct {
	argv   []string
	logger *log.Logger
}

// NewCommand splits cmdline with shell quoting rules.
func NewCommand(cmdline string, logger *log.Logger) (*Command, error) {
	argv, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "generator command %q", cmdline)
	}
	if len(argv) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "generator command is empty")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Command{argv: argv, logger: logger}, nil
}

// Name returns the program name together with its arguments, so that caches
// keyed by name do not mix results of different transducers.
func (c *Command) Name() string {
	return "command:" + shellquote.Join(c.argv...)
}

// Argv returns the split command line.
func (c *Command) Argv() []string {
	return append([]string(nil), c.argv...)
}

// BulkLookup runs the program once for all analyses.
func (c *Command) BulkLookup(ctx context.Context, analyses []string) (map[string][]string, error) {
	if len(analyses) == 0 {
		return map[string][]string{}, nil
	}
	for _, a := range analyses {
		if strings.ContainsAny(a, "\n\t") {
			return nil, errors.New(errors.ErrCodeInvalidInput, "analysis %q contains a line or field separator", a)
		}
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Stdin = strings.NewReader(strings.Join(analyses, "\n") + "\n")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, errors.Wrap(errors.ErrCodeGenerator, err, "run %s", c.argv[0])
	}

	results, err := ParseLookupOutput(&stdout)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("generator lookup", "program", c.argv[0], "analyses", len(analyses), "duration", time.Since(start))

	out := make(map[string][]string, len(analyses))
	for _, a := range analyses {
		if forms, ok := results[a]; ok {
			out[a] = forms
		}
	}
	return out, nil
}
