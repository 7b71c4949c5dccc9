package tui

import (
	"fmt"
	"strings"

	"sbackup/internal/domain"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseWalking Phase = iota
	PhaseConfirm
	PhaseDone
	PhaseError
)

// Messages sent by the walk goroutine through the event channel.
type (
	EntryMsg struct {
		Entry   domain.Entry
		Outcome domain.Outcome
	}
	// PromptMsg asks the user to confirm an overwrite. The walk goroutine
	// blocks on Reply until the confirm phase resolves.
	PromptMsg struct {
		Target string
		Reply  chan<- bool
	}
	DoneMsg struct {
		Report domain.Report
	}
	ErrorMsg struct {
		Err error
	}
)

// Config for the TUI. Events carries EntryMsg/PromptMsg/DoneMsg/ErrorMsg from
// the walk goroutine; Cancel stops the walk when the user quits early.
type Config struct {
	SourceDir string
	TargetDir string
	DryRun    bool
	Events    <-chan tea.Msg
	Cancel    func()
}

// Model is the main TUI model
type Model struct {
	config           Config
	Phase            Phase
	Report           domain.Report
	spinner          spinner.Model
	currentPath      string
	copied           int
	skipped          int
	failed           int
	prompt           *PromptMsg
	confirmSelection bool // true = yes, false = no
	Err              error
	Quitting         bool
	width            int
	height           int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		config:           cfg,
		Phase:            PhaseWalking,
		spinner:          s,
		confirmSelection: false, // default to No
		width:            80,
		height:           24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.config.Events
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			if m.prompt != nil {
				m.prompt.Reply <- false
				m.prompt = nil
			}
			if m.config.Cancel != nil {
				m.config.Cancel()
			}
			return m, tea.Quit
		case "left", "h", "y", "Y":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = true
			}
		case "right", "l", "n", "N":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = false
			}
		case "enter":
			if m.Phase == PhaseConfirm && m.prompt != nil {
				m.prompt.Reply <- m.confirmSelection
				m.prompt = nil
				m.confirmSelection = false
				m.Phase = PhaseWalking
				return m, m.spinner.Tick
			}
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case EntryMsg:
		if msg.Entry.Kind == domain.File || msg.Entry.Kind == domain.DirEnter {
			m.currentPath = msg.Entry.RelativePath
		}
		switch msg.Outcome.Kind {
		case domain.Copied:
			if msg.Entry.Kind == domain.File {
				m.copied++
			}
		case domain.SkippedUpToDate, domain.SkippedUserDeclined:
			m.skipped++
		case domain.Failed:
			if msg.Entry.Kind == domain.File {
				m.failed++
			}
		}
		return m, m.waitForEvent()

	case PromptMsg:
		prompt := msg
		m.prompt = &prompt
		m.confirmSelection = false
		m.Phase = PhaseConfirm
		return m, m.waitForEvent()

	case DoneMsg:
		m.Report = msg.Report
		m.Phase = PhaseDone
		return m, nil

	case ErrorMsg:
		m.Err = msg.Err
		m.Phase = PhaseError
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseWalking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseWalking:
		b.WriteString(m.renderWalking())
	case PhaseConfirm:
		b.WriteString(m.renderWalking())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmPrompt())
	case PhaseDone:
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("sbackup")
	subtitle := subtitleStyle.Render("Resumable tree copy")
	if m.config.DryRun {
		subtitle = subtitleStyle.Render("Resumable tree copy (dry run)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir, m.width-14))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.TargetDir, m.width-14))),
	)
}

func (m Model) renderWalking() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Copying %s\n\n", m.spinner.View(), pathStyle.Render(shortenPath(m.currentPath, m.width-12))))
	b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Copied:"), successStyle.Render(fmt.Sprintf("%d", m.copied))))
	b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Skipped:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, m.skipped))))
	if m.failed > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%s %d", iconError, m.failed))))
	}
	return b.String()
}

func (m Model) renderConfirmPrompt() string {
	if m.prompt == nil {
		return ""
	}

	yes := "  Yes  "
	no := "  No  "
	if m.confirmSelection {
		yes = confirmYesStyle.Render("▸ Yes ◂")
	} else {
		no = confirmNoStyle.Render("▸ No ◂")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		confirmPromptStyle.Render(fmt.Sprintf("%s Overwrite %s?", iconWarning, shortenPath(m.prompt.Target, m.width-14))),
		"",
		"  "+yes+"   "+no,
	)
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Copied:"), successStyle.Render(fmt.Sprintf("%s %d files", iconSuccess, m.Report.Copied))))
	b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Directories:"), pathStyle.Render(fmt.Sprintf("%d", m.Report.Dirs))))
	if m.Report.UpToDate > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Up to date:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, m.Report.UpToDate))))
	}
	if m.Report.Declined > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Declined:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, m.Report.Declined))))
	}
	if m.Report.Failed > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%s %d", iconError, m.Report.Failed))))
	}
	if m.Report.Cycles > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", statLabelStyle.Render("Cycles:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, m.Report.Cycles))))
	}
	b.WriteString("\n")
	b.WriteString(successStyle.Render("ALL DONE"))
	return b.String()
}

func (m Model) renderError() string {
	return errorStyle.Render(fmt.Sprintf("%s %v", iconError, m.Err))
}

func (m Model) renderHelp() string {
	switch m.Phase {
	case PhaseConfirm:
		return helpStyle.Render("←/→ or y/n select · enter confirm · q quit")
	case PhaseDone, PhaseError:
		return helpStyle.Render("enter or q to exit")
	default:
		return helpStyle.Render("q to quit")
	}
}

func shortenPath(path string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(path) <= max {
		return path
	}
	return "…" + path[len(path)-max+1:]
}
