// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/byj48/uln2003"
)

func newJogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jog",
		Short: "Drive the motor interactively from the keyboard",
		Long: `Drive the motor from the keyboard:

  ←/h  rotate counterclockwise     →/l  rotate clockwise
  space  stop                      m    next stepping method
  +    slower (longer steps)       -    faster (shorter steps)
  q    stop and quit`,
		Args: cobra.NoArgs,
		RunE: runJog,
	}
}

func runJog(cmd *cobra.Command, args []string) error {
	// The LED board would fight the UI for the terminal.
	m, err := openMotor(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(newJogModel(m.Dev),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if jm, ok := final.(jogModel); ok && jm.err != nil {
		return jm.err
	}
	return m.Close()
}

const (
	jogDurationStep = time.Millisecond
	jogMinDuration  = time.Millisecond
	jogMaxDuration  = 100 * time.Millisecond
)

var (
	jogTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	jogRunStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	jogStopStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	jogErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	jogHelpStyle  = lipgloss.NewStyle().Faint(true)
)

// jogModel is the bubbletea model of the jog UI. It owns the motor's
// background rotation: every start, stop and setting change goes through
// Update, which serializes them.
type jogModel struct {
	dev       *uln2003.Dev
	direction int // -1 counterclockwise, 0 stopped, 1 clockwise
	err       error
}

func newJogModel(dev *uln2003.Dev) jogModel {
	return jogModel{dev: dev}
}

func (m jogModel) Init() tea.Cmd {
	return nil
}

func (m jogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.err = m.dev.Stop()
		m.direction = 0
		return m, tea.Quit
	case "right", "l":
		m.setDirection(1)
	case "left", "h":
		m.setDirection(-1)
	case " ":
		m.setDirection(0)
	case "m":
		m.reconfigure(func() {
			m.dev.SetSteppingMethod((m.dev.SteppingMethod() + 1) % 3)
		})
	case "+", "=":
		m.reconfigure(func() {
			m.dev.SetStepDuration(min(m.dev.StepDuration()+jogDurationStep, jogMaxDuration))
		})
	case "-", "_":
		m.reconfigure(func() {
			m.dev.SetStepDuration(max(m.dev.StepDuration()-jogDurationStep, jogMinDuration))
		})
	}
	return m, nil
}

func (m *jogModel) setDirection(d int) {
	switch d {
	case 1:
		m.err = m.dev.StartClockwise()
	case -1:
		m.err = m.dev.StartCounterClockwise()
	default:
		m.err = m.dev.Stop()
	}
	m.direction = d
	if m.err != nil {
		m.direction = 0
	}
}

// reconfigure stops the motor while settings change, then resumes in the
// same direction.
func (m *jogModel) reconfigure(change func()) {
	d := m.direction
	if m.err = m.dev.Stop(); m.err != nil {
		m.direction = 0
		return
	}
	change()
	m.setDirection(d)
}

func (m jogModel) View() string {
	var b strings.Builder
	b.WriteString(jogTitleStyle.Render("28BYJ-48 jog"))
	b.WriteString("\n\n")

	state := jogStopStyle.Render("stopped")
	switch m.direction {
	case 1:
		state = jogRunStyle.Render("clockwise →")
	case -1:
		state = jogRunStyle.Render("← counterclockwise")
	}
	fmt.Fprintf(&b, "  state:    %s\n", state)
	fmt.Fprintf(&b, "  method:   %s (%.2f° per step)\n", m.dev.SteppingMethod(), m.dev.SteppingMethod().StepAngle())
	fmt.Fprintf(&b, "  step:     %s\n", m.dev.StepDuration())
	if m.err != nil {
		fmt.Fprintf(&b, "\n  %s\n", jogErrStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(jogHelpStyle.Render("  ←/→ rotate • space stop • m method • +/- speed • q quit"))
	b.WriteString("\n")
	return b.String()
}
