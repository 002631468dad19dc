// CLAUDE:SUMMARY Sequential line-by-line driver: read, sanitize, emit or drop, preserve order.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hazyhaar/csvnorm/pkg/sanitize"
)

// maxLineSize bounds a single physical line. Notes fields get long, but a
// megabyte of one row means the input is not the expected feed.
const maxLineSize = 1024 * 1024

var utf8BOM = []byte("\xef\xbb\xbf")

// Stats counts what happened to the rows of one run.
type Stats struct {
	Read    int // physical lines read
	Emitted int // normalized rows written
	Dropped int // rows discarded as unrepairable
	Headers int // header rows dropped (kept headers count as emitted)
}

// AuditSink receives one record per dropped row. Implementations must not
// write to the data stream.
type AuditSink interface {
	RecordDrop(line int, raw, reason string) error
}

// Processor drives a Sanitizer over a line stream. Rows are independent;
// processing is strictly sequential and output order matches input order.
type Processor struct {
	san    *sanitize.Sanitizer
	logger *slog.Logger
	audit  AuditSink
}

// New builds a Processor. logger must not be nil; audit may be.
func New(san *sanitize.Sanitizer, logger *slog.Logger, audit AuditSink) *Processor {
	return &Processor{san: san, logger: logger, audit: audit}
}

// Run reads CSV lines from r until EOF, writing one normalized line per
// retained row to w. Dropped rows leave no trace on w; they are logged and,
// when an audit sink is configured, journaled. A single bad row never
// aborts the run — only I/O failures and context cancellation do.
func (p *Processor) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	out := bufio.NewWriter(w)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := sc.Bytes()
		if stats.Read == 0 {
			line = bytes.TrimPrefix(line, utf8BOM)
		}
		stats.Read++

		row, err := p.san.Line(line)
		if errors.Is(err, sanitize.ErrHeaderRow) {
			stats.Headers++
			continue
		}
		if err != nil {
			stats.Dropped++
			p.logger.Warn("dropping row", "line", stats.Read, "reason", err)
			if p.audit != nil {
				if aerr := p.audit.RecordDrop(stats.Read, sanitize.Repair(line), err.Error()); aerr != nil {
					p.logger.Error("audit write failed", "line", stats.Read, "error", aerr)
				}
			}
			continue
		}

		if _, err := out.WriteString(row); err != nil {
			return stats, fmt.Errorf("write row: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return stats, fmt.Errorf("write row: %w", err)
		}
		stats.Emitted++
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}

	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}
	return stats, nil
}
