package stream

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/hazyhaar/csvnorm/pkg/sanitize"
)

func testProcessor(t *testing.T, audit AuditSink) *Processor {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	san := sanitize.New(sanitize.Options{Location: loc})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(san, logger, audit)
}

type memAudit struct {
	lines   []int
	reasons []string
}

func (m *memAudit) RecordDrop(line int, raw, reason string) error {
	m.lines = append(m.lines, line)
	m.reasons = append(m.reasons, reason)
	return nil
}

func TestRunEmitsInInputOrder(t *testing.T) {
	input := strings.Join([]string{
		`4/1/11 11:00:00 AM,"123 4th St, Anywhere, AA",94121,Monkey Alberto,1:23:32,1:32:33,1:56:05,first`,
		`12/25/10 1:30:00 PM,addr,123,Second Person,0:00:01,0:00:02,0:00:03,second`,
	}, "\n") + "\n"

	var out strings.Builder
	stats, err := testProcessor(t, nil).Run(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := `2011-04-01T11:00:00-07:00,"123 4th St, Anywhere, AA",94121,MONKEY ALBERTO,5012,5553,6965,first
2010-12-25T13:30:00-08:00,addr,00123,SECOND PERSON,1,2,3,second
`
	if out.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", out.String(), want)
	}
	if stats.Read != 2 || stats.Emitted != 2 || stats.Dropped != 0 {
		t.Errorf("stats = %+v, want 2 read, 2 emitted", stats)
	}
}

func TestRunDropsSilently(t *testing.T) {
	input := strings.Join([]string{
		`4/1/11 11:00:00 AM,addr,94121,Keep Me,1:00:00,1:00:00,2:00:00,ok`,
		`4/1/11 11:00:00 AM,addr,94121,Drop Me,1:00:00,1:00:00,zzsasdfa,bad total`,
		`4/1/11 11:00:00 AM,addr,94121,Keep Too,0:00:01,0:00:02,0:00:03,ok`,
	}, "\n") + "\n"

	audit := &memAudit{}
	var out strings.Builder
	stats, err := testProcessor(t, audit).Run(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Read != 3 || stats.Emitted != 2 || stats.Dropped != 1 {
		t.Errorf("stats = %+v, want 3/2/1", stats)
	}
	if strings.Contains(out.String(), "DROP ME") {
		t.Error("dropped row leaked into output")
	}
	if len(audit.lines) != 1 || audit.lines[0] != 2 {
		t.Errorf("audit lines = %v, want [2]", audit.lines)
	}
	if !strings.Contains(audit.reasons[0], "TotalDuration") {
		t.Errorf("audit reason = %q, want mention of TotalDuration", audit.reasons[0])
	}
}

func TestRunStripsBOMAndSkipsHeader(t *testing.T) {
	input := "\xef\xbb\xbfTimestamp,Address,ZIP,FullName,FooDuration,BarDuration,TotalDuration,Notes\n" +
		"4/1/11 11:00:00 AM,addr,94121,Name,1:00:00,1:00:00,2:00:00,notes\n"

	var out strings.Builder
	stats, err := testProcessor(t, nil).Run(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Headers != 1 || stats.Emitted != 1 || stats.Dropped != 0 {
		t.Errorf("stats = %+v, want 1 header, 1 emitted, 0 dropped", stats)
	}
	if strings.Contains(out.String(), "Timestamp,") {
		t.Error("header leaked into output")
	}
}

func TestRunEmptyInput(t *testing.T) {
	var out strings.Builder
	stats, err := testProcessor(t, nil).Run(context.Background(), strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "4/1/11 11:00:00 AM,addr,94121,Name,1:00:00,1:00:00,2:00:00,notes\n"
	var out strings.Builder
	_, err := testProcessor(t, nil).Run(ctx, strings.NewReader(input), &out)
	if err == nil {
		t.Error("expected context error")
	}
}
