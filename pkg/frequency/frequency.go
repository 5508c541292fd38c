// Package frequency loads corpus counts for analyses.
//
// The resource is line-oriented. Each line holds a count, one ignored field
// (the surface form in the corpus export), and one or more analyses that the
// count applies to, all separated by whitespace:
//
//	12 atim atim+N+A+Sg
//	3 nipiy nipiy+N+I+Sg nipiy+N+I+Loc
package frequency

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paradigms/pkg/errors"
)

// Table maps analyses to counts. The zero value is an empty table.
// A Table is immutable after loading and safe for concurrent reads.
type Table struct {
	counts map[string]int
}

// New returns a table over counts. The map is copied.
func New(counts map[string]int) Table {
	m := make(map[string]int, len(counts))
	for k, v := range counts {
		m[k] = v
	}
	return Table{counts: m}
}

// Get returns the count for analysis, or 0 when it was never seen.
func (t Table) Get(analysis string) int {
	return t.counts[analysis]
}

// Len returns the number of analyses with a count.
func (t Table) Len() int { return len(t.counts) }

// Load reads a frequency resource. Blank lines are skipped. Lines with fewer
// than three fields or a non-integer count are logged and skipped. When an
// analysis appears on several lines the last count wins.
func Load(r io.Reader, logger *log.Logger) (Table, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	counts := make(map[string]int)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			logger.Warn("skipping broken frequency line", "line", lineNo, "text", scanner.Text())
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			logger.Warn("skipping frequency line with bad count", "line", lineNo, "count", fields[0])
			continue
		}
		for _, analysis := range fields[2:] {
			counts[analysis] = n
		}
	}
	if err := scanner.Err(); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read frequency resource")
	}
	logger.Debug("loaded frequency table", "analyses", len(counts))
	return Table{counts: counts}, nil
}

// LoadFile opens path and calls [Load].
func LoadFile(path string, logger *log.Logger) (Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "frequency file not found: %s", path)
	}
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return Load(f, logger)
}
