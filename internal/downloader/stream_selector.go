package downloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kkdai/youtube/v2"
)

var (
	selectorTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0B0B0B")).
				Background(lipgloss.Color("#7FDBFF")).
				Bold(true).
				Padding(0, 1)

	selectorHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A6ADC8")).
				Faint(true)

	selectorHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2")).
				Bold(true)

	selectorSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0B0B0B")).
				Background(lipgloss.Color("#00F5D4")).
				Bold(true)

	selectorStreamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#EAEAEA"))
)

const digitBufferTimeout = 1500 * time.Millisecond

// selectorRow is either a group heading or a selectable stream.
type selectorRow struct {
	heading StreamKind
	stream  *StreamDescriptor
}

type streamSelectorModel struct {
	viewport      viewport.Model
	title         string
	ready         bool
	rows          []selectorRow
	selectable    []int // indexes into rows
	cursor        int   // index into selectable, -1 when nothing picked
	quitting      bool
	cancelled     bool
	digitBuffer   string
	lastDigitTime time.Time
}

type quitMsg struct{}

type digitBufferExpireMsg struct {
	expireTime time.Time
}

func newStreamSelectorModel(video *youtube.Video, set StreamSet) *streamSelectorModel {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7FDBFF"))

	m := &streamSelectorModel{
		viewport: vp,
		title:    videoLabel(video),
		cursor:   -1,
	}
	for _, group := range set.Groups() {
		m.rows = append(m.rows, selectorRow{heading: group.Kind})
		for i := range group.Streams {
			m.selectable = append(m.selectable, len(m.rows))
			m.rows = append(m.rows, selectorRow{stream: &group.Streams[i]})
		}
	}
	if len(m.selectable) > 0 {
		m.cursor = 0
	}
	m.updateContent()
	return m
}

func (m *streamSelectorModel) selectedRow() int {
	if m.cursor < 0 || m.cursor >= len(m.selectable) {
		return -1
	}
	return m.selectable[m.cursor]
}

func (m *streamSelectorModel) buildContent() string {
	var b strings.Builder
	selected := m.selectedRow()
	for i, row := range m.rows {
		if row.stream == nil {
			b.WriteString(selectorHeaderStyle.Render(string(row.heading)))
			b.WriteString("\n")
			continue
		}
		line := "  " + row.stream.String()
		if i == selected {
			line = selectorSelectedStyle.Render(line)
		} else {
			line = selectorStreamStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *streamSelectorModel) updateContent() {
	m.viewport.SetContent(m.buildContent())

	row := m.selectedRow()
	if row < 0 {
		return
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 2
	if row < top {
		m.viewport.SetYOffset(row)
	} else if row >= bottom {
		m.viewport.SetYOffset(row - m.viewport.Height + 3)
	}
}

func (m *streamSelectorModel) Init() tea.Cmd {
	return nil
}

func quitAfterDelay() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return quitMsg{}
	})
}

func scheduleDigitBufferExpiry(expireTime time.Time) tea.Cmd {
	return tea.Tick(digitBufferTimeout, func(time.Time) tea.Msg {
		return digitBufferExpireMsg{expireTime: expireTime}
	})
}

func (m *streamSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.quitting {
		if _, ok := msg.(quitMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = msg.Height - 6
		m.ready = true
		m.updateContent()
		return m, nil
	case tea.KeyMsg:
		n := len(m.selectable)
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.cancelled = true
			return m, quitAfterDelay()
		case "up", "k":
			if n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
			}
		case "down", "j":
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case "home", "g":
			if n > 0 {
				m.cursor = 0
			}
		case "end", "G":
			if n > 0 {
				m.cursor = n - 1
			}
		case "enter":
			if m.selectedRow() >= 0 {
				m.quitting = true
				return m, quitAfterDelay()
			}
			return m, nil
		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			return m, m.typeDigit(msg.String())
		default:
			return m, nil
		}
		m.updateContent()
		return m, nil
	case digitBufferExpireMsg:
		if msg.expireTime.Equal(m.lastDigitTime) {
			m.digitBuffer = ""
		}
		return m, nil
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

// typeDigit extends the itag being typed and jumps to the first stream whose
// itag starts with it. An exact match clears the buffer.
func (m *streamSelectorModel) typeDigit(digit string) tea.Cmd {
	now := time.Now()
	if !m.lastDigitTime.IsZero() && now.Sub(m.lastDigitTime) > digitBufferTimeout {
		m.digitBuffer = ""
	}
	m.digitBuffer += digit
	m.lastDigitTime = now

	prefixMatch := -1
	for i, row := range m.selectable {
		itag := strconv.Itoa(m.rows[row].stream.Itag)
		if itag == m.digitBuffer {
			m.cursor = i
			m.digitBuffer = ""
			m.updateContent()
			return nil
		}
		if prefixMatch < 0 && strings.HasPrefix(itag, m.digitBuffer) {
			prefixMatch = i
		}
	}
	if prefixMatch < 0 {
		m.digitBuffer = ""
		return nil
	}
	m.cursor = prefixMatch
	m.updateContent()
	return scheduleDigitBufferExpiry(now)
}

func (m *streamSelectorModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(selectorTitleStyle.Render(m.title))
	b.WriteString(" ")
	switch {
	case m.quitting && m.cancelled:
		b.WriteString(selectorHelpStyle.Render("Cancelled"))
	case m.quitting:
		b.WriteString(selectorHelpStyle.Render(fmt.Sprintf("Selected: itag %d", m.SelectedItag())))
	case m.digitBuffer != "":
		b.WriteString(selectorHelpStyle.Render(fmt.Sprintf("Typing itag: %s_", m.digitBuffer)))
	default:
		b.WriteString(selectorHelpStyle.Render("↑/↓ select · Enter download · q quit"))
	}
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if !m.quitting {
		b.WriteString(selectorHelpStyle.Render("Type digits to jump to an itag, Home/End for first/last"))
	}
	return b.String()
}

// SelectedItag returns the highlighted itag, or 0 when the picker was
// cancelled or empty.
func (m *streamSelectorModel) SelectedItag() int {
	if m.cancelled {
		return 0
	}
	row := m.selectedRow()
	if row < 0 {
		return 0
	}
	return m.rows[row].stream.Itag
}

// RunStreamSelector shows set grouped by kind and returns the chosen itag.
// It returns 0 when the user quits without choosing.
func RunStreamSelector(video *youtube.Video, set StreamSet) (int, error) {
	model := newStreamSelectorModel(video, set)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	result, err := p.Run()
	if err != nil {
		return 0, err
	}
	if m, ok := result.(*streamSelectorModel); ok {
		return m.SelectedItag(), nil
	}
	return 0, nil
}
