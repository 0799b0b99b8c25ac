package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/explainer"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

var explainerCmd = &cobra.Command{
	Use:   "explainer",
	Short: "Play the how-it-works walkthrough in the terminal",
	Long:  "Play the timed walkthrough of how the site is built. Press space or → to skip a phase and q to quit.",
	RunE:  runExplainer,
}

func init() {
	rootCmd.AddCommand(explainerCmd)
}

var (
	styleStep  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EC9D34"))
	styleTag   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleHelp  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// walkthrough is the subset of *explainer.Runner the TUI drives.
type walkthrough interface {
	Start()
	Skip()
	Stop()
}

type stateMsg explainer.State

type completeMsg struct{}

type explainerModel struct {
	phases   []types.ExplainerPhase
	runner   walkthrough
	bar      progress.Model
	state    explainer.State
	finished bool
}

func newExplainerModel(phases []types.ExplainerPhase, runner walkthrough) explainerModel {
	return explainerModel{
		phases: phases,
		runner: runner,
		bar:    progress.New(progress.WithSolidFill("#EC9D34"), progress.WithWidth(48)),
		state:  explainer.State{Total: len(phases)},
	}
}

// Init starts the runner off the update loop; its first notification arrives as a stateMsg.
func (m explainerModel) Init() tea.Cmd {
	return func() tea.Msg {
		m.runner.Start()
		return nil
	}
}

func (m explainerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.runner.Stop()
			return m, tea.Quit
		case " ", "space", "right", "enter":
			// Skip notifies synchronously, so it must not run inside Update.
			return m, func() tea.Msg {
				m.runner.Skip()
				return nil
			}
		}
	case stateMsg:
		m.state = explainer.State(msg)
	case completeMsg:
		m.finished = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-8, 10), 80)
	}
	return m, nil
}

func (m explainerModel) View() string {
	if len(m.phases) == 0 {
		return ""
	}

	index := min(m.state.Index, len(m.phases)-1)
	phase := m.phases[index]

	var sb strings.Builder
	sb.WriteString(styleStep.Render(fmt.Sprintf("Phase %d of %d", index+1, len(m.phases))))
	sb.WriteString("\n")
	sb.WriteString(styleTitle.Render(phase.Title))
	sb.WriteString("\n\n")
	sb.WriteString(phase.Description)
	sb.WriteString("\n")
	if len(phase.Tags) > 0 {
		sb.WriteString(styleTag.Render(strings.Join(phase.Tags, " · ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.bar.ViewAs(m.state.Progress / 100))
	sb.WriteString("\n\n")
	if m.finished || m.state.Done {
		sb.WriteString(styleHelp.Render("walkthrough complete"))
	} else {
		sb.WriteString(styleHelp.Render("space: skip phase · q: quit"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func runExplainer(_ *cobra.Command, _ []string) error {
	store, err := content.Default()
	if err != nil {
		return err
	}
	phases := store.ExplainerPhases()
	seq, err := explainer.NewSequencer(phases, explainer.TickInterval)
	if err != nil {
		return err
	}

	var program *tea.Program
	runner := explainer.NewRunner(seq, explainer.RealClock(), explainer.Observer{
		OnChange:   func(st explainer.State) { program.Send(stateMsg(st)) },
		OnComplete: func() { program.Send(completeMsg{}) },
	})
	defer runner.Stop()

	program = tea.NewProgram(newExplainerModel(phases, runner))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("explainer: %w", err)
	}
	return nil
}
