package display

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xumarcus/minesweeper/internal/board"
	"github.com/xumarcus/minesweeper/internal/cellstate"
	"github.com/xumarcus/minesweeper/internal/host"
	"github.com/xumarcus/minesweeper/internal/mserr"
	"github.com/xumarcus/minesweeper/internal/solver"
)

type tickMsg struct{}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Model is the Bubbletea model for the auto-playing solver TUI: its
// "cursor" is always the solver's own chosen cell, and Update advances one
// solve step per tick instead of reading directional keys.
type Model struct {
	cfg       *board.Config
	h         host.Host
	driver    *solver.Driver
	state     *cellstate.State
	bombs     []bool
	tickEvery time.Duration
	fast      bool

	lastIdx  board.Index
	lastProb float64
	steps    int
	won      bool
	lost     bool
	done     bool
}

// New builds a Model ready to auto-play h via driver. bombs, when non-nil,
// lets the TUI reveal ground truth on game over (debug mode). fast selects
// solver.Driver.CrudeSearch over the exact branching evaluator for every
// step, the TUI-side counterpart of the CLI's --fast flag.
func New(cfg *board.Config, h host.Host, driver *solver.Driver, bombs []bool, tickEvery time.Duration, fast bool) Model {
	return Model{
		cfg:       cfg,
		h:         h,
		driver:    driver,
		state:     h.Pull(),
		bombs:     bombs,
		tickEvery: tickEvery,
		fast:      fast,
	}
}

// Done reports whether the user asked to quit.
func (m Model) Done() bool { return m.done }

// Won reports whether the solver ran out of cells to reveal, the solved
// terminal state.
func (m Model) Won() bool { return m.won }

// Lost reports whether a reveal uncovered a mine.
func (m Model) Lost() bool { return m.lost }

// Steps returns the number of SolveNext decisions applied so far.
func (m Model) Steps() int { return m.steps }

// State returns the current board state, for callers that need to inspect
// or log it after the program loop exits (e.g. a --json summary).
func (m Model) State() *cellstate.State { return m.state }

// Init starts the autoplay tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickEvery)
}

// Update advances one solver step per tick and handles quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		}
	case tickMsg:
		if m.won || m.lost {
			return m, nil
		}
		m = m.step()
		if m.won || m.lost {
			return m, nil
		}
		return m, tickCmd(m.tickEvery)
	}
	return m, nil
}

// step runs one SolveNext decision and applies it to the host, advancing the
// cached state. A propagation/evaluation failure or a bomb reveal ends the
// run rather than panicking.
func (m Model) step() Model {
	var decision solver.Decision
	if m.fast {
		d, ok := m.driver.CrudeSearch(m.state)
		if !ok {
			m.won = true
			return m
		}
		decision = d
	} else {
		d, err := m.driver.SolveNext(m.state)
		if err != nil {
			if errors.Is(err, mserr.ErrAlreadySolved) {
				m.won = true
			} else {
				m.lost = true
			}
			return m
		}
		decision = d
	}
	m.lastIdx = decision.Idx
	m.lastProb = decision.Probability

	var revealErr error
	if decision.Probability >= 1 {
		revealErr = m.h.Flag(decision.Idx)
	} else {
		revealErr = m.h.Reveal(decision.Idx)
	}
	m.state = m.h.Pull()
	m.steps++
	if errors.Is(revealErr, mserr.ErrRevealedBomb) {
		m.lost = true
	}
	return m
}

// View renders the board, a status line, and a game-over banner.
func (m Model) View() string {
	var sections []string
	sections = append(sections, titleStyle.Render("MINESWEEPER SOLVER"), "")

	status := statusStyle.Render(fmt.Sprintf(
		"Flags remaining: %d  Steps: %d  Last: cell %d (p=%.2f)",
		m.state.FlagsRemaining(), m.steps, m.lastIdx, m.lastProb,
	))
	sections = append(sections, status, "", m.renderGrid(), "")

	switch {
	case m.won:
		sections = append(sections, winStyle.Render("SOLVED"), "")
	case m.lost:
		sections = append(sections, loseStyle.Render("HIT A MINE"), "")
	}

	sections = append(sections, footerStyle.Render("Q Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderGrid() string {
	bombs := m.bombs
	if !m.won && !m.lost {
		bombs = nil
	}
	var rows []string
	for r := 0; r < m.cfg.Rows(); r++ {
		var cells []string
		for c := 0; c < m.cfg.Cols(); c++ {
			idx := m.cfg.FromRC(r, c)
			status := m.state.Get(idx)
			isBomb := idx < len(bombs) && bombs[idx]
			text := Glyph(status, isBomb)
			style := cellStyle(status, idx == m.lastIdx)
			cells = append(cells, style.Render(text))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

func cellStyle(status cellstate.Status, isLast bool) lipgloss.Style {
	base := lipgloss.NewStyle().Width(2)
	fg := cellForeground(status)
	if isLast {
		return base.Background(lipgloss.Color("#444444")).Bold(true).Foreground(fg)
	}
	return base.Foreground(fg)
}

func cellForeground(status cellstate.Status) lipgloss.Color {
	switch status.Kind {
	case cellstate.Flagged:
		return lipgloss.Color("#FF0000")
	case cellstate.Marked:
		return lipgloss.Color("#00E632")
	case cellstate.Known:
		return numberColor(status.Count)
	default:
		return lipgloss.Color("#808080")
	}
}

func numberColor(n int) lipgloss.Color {
	switch n {
	case 1:
		return lipgloss.Color("#0000FF")
	case 2:
		return lipgloss.Color("#008200")
	case 3:
		return lipgloss.Color("#FF0000")
	case 4:
		return lipgloss.Color("#000084")
	case 5:
		return lipgloss.Color("#840000")
	case 6:
		return lipgloss.Color("#008284")
	case 7:
		return lipgloss.Color("#840084")
	case 8:
		return lipgloss.Color("#808080")
	default:
		return lipgloss.Color("#FFFFFF")
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00E632"))

	loseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))
)
