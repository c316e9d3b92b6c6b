package downloader

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Options describes behavior shared by the single-video and catalog runs.
type Options struct {
	Quiet    bool
	LogLevel string
	Timeout  time.Duration
}

type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel accepts debug, info, warn and error (case-insensitive).
func ParseLogLevel(raw string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LogDebug, nil
	case "", "info":
		return LogInfo, nil
	case "warn", "warning":
		return LogWarn, nil
	case "error":
		return LogError, nil
	default:
		return LogInfo, fmt.Errorf("invalid log level %q (expected debug, info, warn, error)", raw)
	}
}

var (
	logDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8")).Faint(true)
	logInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FDBFF"))
	logWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFDC00"))
	logErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4136")).Bold(true)
)

// Printer writes user-facing lines to out and log/progress lines to errOut.
type Printer struct {
	mu              sync.Mutex
	out             io.Writer
	errOut          io.Writer
	quiet           bool
	level           LogLevel
	color           bool
	progressEnabled bool
	columns         int
}

// NewPrinter builds a Printer over the given writers. Color and in-place
// progress are only enabled when errOut is a terminal.
func NewPrinter(opts Options, out, errOut io.Writer) *Printer {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	level, err := ParseLogLevel(opts.LogLevel)
	if err != nil {
		level = LogInfo
	}
	tty := false
	if f, ok := errOut.(*os.File); ok {
		tty = isTerminal(f)
	}
	columns := terminalColumns()
	if columns <= 0 {
		columns = 100
	}
	return &Printer{
		out:             out,
		errOut:          errOut,
		quiet:           opts.Quiet,
		level:           level,
		color:           tty && supportsColor(),
		progressEnabled: tty && !opts.Quiet,
		columns:         columns,
	}
}

func newPrinter(opts Options) *Printer {
	return NewPrinter(opts, os.Stdout, os.Stderr)
}

// Printf writes a user-facing line to stdout. Quiet mode does not affect it.
func (p *Printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// Log writes a leveled message. Errors are shown even in quiet mode.
func (p *Printer) Log(level LogLevel, msg string) {
	if p == nil || msg == "" || level < p.level {
		return
	}
	if p.quiet && level < LogError {
		return
	}
	tag := "[" + level.String() + "]"
	if p.color {
		switch level {
		case LogDebug:
			tag = logDebugStyle.Render(tag)
		case LogWarn:
			tag = logWarnStyle.Render(tag)
		case LogError:
			tag = logErrorStyle.Render(tag)
		default:
			tag = logInfoStyle.Render(tag)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progressEnabled {
		p.clearLineLocked()
	}
	fmt.Fprintf(p.errOut, "%s %s\n", tag, msg)
}

func (p *Printer) Logf(level LogLevel, format string, args ...any) {
	p.Log(level, fmt.Sprintf(format, args...))
}

// Prefix labels a progress line, e.g. "[2/10] Some title".
func (p *Printer) Prefix(index, total int, title string) string {
	if total <= 0 {
		total = 1
	}
	width := len(strconv.Itoa(total))
	titleWidth := p.columns - 44
	if titleWidth < 20 {
		titleWidth = 20
	}
	if titleWidth > 60 {
		titleWidth = 60
	}
	return fmt.Sprintf("[%*d/%d] %s", width, index, total, truncateText(title, titleWidth))
}

func (p *Printer) progressLine(prefix string, current, total int64, elapsed time.Duration) string {
	speed := ""
	if elapsed > 0 {
		speed = humanBytes(int64(float64(current)/elapsed.Seconds())) + "/s"
	}
	if total > 0 {
		percent := float64(current) * 100 / float64(total)
		return fmt.Sprintf("%s %6.2f%% %s / %s %s",
			prefix,
			percent,
			padLeft(humanBytes(current), 9),
			padLeft(humanBytes(total), 9),
			padLeft(speed, 10),
		)
	}
	return fmt.Sprintf("%s %s %s", prefix, padLeft(humanBytes(current), 9), padLeft(speed, 10))
}

func (p *Printer) writeProgressLine(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progressEnabled {
		fmt.Fprintf(p.errOut, "\r%s", truncateText(line, p.columns))
		return
	}
	fmt.Fprintln(p.errOut, line)
}

func (p *Printer) endProgressLine() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progressEnabled {
		fmt.Fprintln(p.errOut)
	}
}

func (p *Printer) clearLineLocked() {
	fmt.Fprintf(p.errOut, "\r%s\r", strings.Repeat(" ", p.columns))
}

func padLeft(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat(" ", width-len(value)) + value
}

func truncateText(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}

func terminalColumns() int {
	if columns := os.Getenv("COLUMNS"); columns != "" {
		if val, err := strconv.Atoi(columns); err == nil && val > 0 {
			return val
		}
	}
	return 0
}

func supportsColor() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return os.Getenv("CLICOLOR") != "0"
}

func isTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isTerminal(f)
}
