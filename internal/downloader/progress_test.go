package downloader

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestProgressNonTTYPrintsFinalLineOnly(t *testing.T) {
	var errOut bytes.Buffer
	printer := NewPrinter(Options{}, nil, &errOut)
	progress := newProgressWriter(10, printer, "[1/1] demo")
	_, _ = progress.Write([]byte("12345"))
	_, _ = progress.Write([]byte("12345"))
	progress.Finish()
	progress.Finish()

	output := errOut.String()
	if strings.Contains(output, "\r") {
		t.Fatalf("expected no carriage returns in non-TTY output, got %q", output)
	}
	if strings.Count(output, "[1/1] demo") != 1 {
		t.Fatalf("expected exactly one progress line, got %q", output)
	}
	if !strings.Contains(output, "100.00%") {
		t.Fatalf("expected completed percentage, got %q", output)
	}
}

func TestPrinterLogLevels(t *testing.T) {
	var errOut bytes.Buffer
	printer := NewPrinter(Options{LogLevel: "warn"}, nil, &errOut)
	printer.Log(LogInfo, "hidden")
	printer.Log(LogWarn, "careful")
	printer.Logf(LogError, "failed %d", 3)

	output := errOut.String()
	if strings.Contains(output, "hidden") {
		t.Fatalf("info message should be filtered at warn level: %q", output)
	}
	if !strings.Contains(output, "[WARN] careful") {
		t.Fatalf("expected warn line, got %q", output)
	}
	if !strings.Contains(output, "[ERROR] failed 3") {
		t.Fatalf("expected error line, got %q", output)
	}
}

func TestPrinterQuietKeepsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(Options{Quiet: true}, &out, &errOut)
	printer.Log(LogInfo, "chatter")
	printer.Log(LogError, "broken")
	printer.Printf("result\n")

	if strings.Contains(errOut.String(), "chatter") {
		t.Fatalf("quiet mode should drop info logs: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "broken") {
		t.Fatalf("quiet mode should keep errors: %q", errOut.String())
	}
	if out.String() != "result\n" {
		t.Fatalf("expected stdout line, got %q", out.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, raw := range []string{"debug", "INFO", "", "warning", "error"} {
		if _, err := ParseLogLevel(raw); err != nil {
			t.Fatalf("ParseLogLevel(%q) unexpected error: %v", raw, err)
		}
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestPrinterPrefix(t *testing.T) {
	printer := NewPrinter(Options{}, nil, nil)
	if got := printer.Prefix(3, 12, "Title"); got != "[ 3/12] Title" {
		t.Fatalf("unexpected prefix %q", got)
	}
}

func TestCopyWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var dst bytes.Buffer
	_, err := copyWithContext(ctx, &dst, strings.NewReader("data"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
