// Package tui is the interactive table: a command-driven Bubble Tea
// interface over a game.Session. All game state lives in the session; the
// model only holds a rendered snapshot and the input machinery.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/internal/config"
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/strategy"
	"github.com/muesli/termenv"
)

type screen int

const (
	screenLogin screen = iota
	screenDecks
	screenTable
)

// Model is the Bubble Tea model for the trainer
type Model struct {
	session *game.Session
	cfg     *config.Config
	logger  *log.Logger

	input  textinput.Model
	screen screen

	showCount bool
	showStats bool
	feedback  string

	width    int
	height   int
	quitting bool
}

// New creates a TUI model over a session
func New(session *game.Session, cfg *config.Config, logger *log.Logger) *Model {
	lipgloss.SetColorProfile(termenv.ColorProfile())

	ti := textinput.New()
	ti.Placeholder = "Enter your name"
	ti.Focus()
	ti.CharLimit = 60
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		session: session,
		cfg:     cfg,
		logger:  logger.WithPrefix("tui"),
		input:   ti,
		screen:  screenLogin,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			command := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if cmd := m.processCommand(command); cmd != nil {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// processCommand routes one submitted line. Returns a non-nil command only
// when quitting.
func (m *Model) processCommand(command string) tea.Cmd {
	m.feedback = ""
	fields := strings.Fields(strings.ToLower(command))

	switch m.screen {
	case screenLogin:
		name := strings.TrimSpace(command)
		if name == "" {
			m.feedback = "A name is required."
			return nil
		}
		if err := m.session.Login(name); err != nil {
			m.logger.Error("login failed", "error", err)
			m.feedback = "Could not load your saved game."
			return nil
		}
		m.screen = screenDecks
		m.input.Placeholder = m.deckPrompt()
		return nil

	case screenDecks:
		if len(fields) == 0 {
			m.feedback = m.deckPrompt()
			return nil
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			m.feedback = m.deckPrompt()
			return nil
		}
		if err := m.session.SelectDeckCount(n); err != nil {
			m.reportError(err)
			return nil
		}
		m.screen = screenTable
		m.input.Placeholder = "bet <amount> | deal | help"
		return nil

	case screenTable:
		return m.processTableCommand(fields)
	}
	return nil
}

func (m *Model) processTableCommand(fields []string) tea.Cmd {
	if len(fields) == 0 {
		// Bare enter advances past a finished round.
		if m.session.Round() != nil && m.session.Round().Phase() == game.PhaseComplete {
			m.nextRound()
		}
		return nil
	}

	switch fields[0] {
	case "quit", "exit":
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	case "bet":
		spot, amount, ok := parseBetArgs(fields[1:])
		if !ok {
			m.feedback = "Usage: bet [spot] <amount>"
			return nil
		}
		m.reportError(m.session.PlaceBet(spot, amount))
	case "clear":
		spot := 0
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				m.feedback = "Usage: clear [spot]"
				return nil
			}
			spot = n - 1
		}
		m.reportError(m.session.RemoveBet(spot))
	case "deal":
		m.reportError(m.session.Deal())
	case "hit", "h":
		m.reportError(m.session.Hit())
	case "stand", "s":
		m.reportError(m.session.Stand())
	case "double", "d":
		m.reportError(m.session.DoubleDown())
	case "split", "p":
		m.reportError(m.session.Split())
	case "next", "n":
		m.nextRound()
	case "advice", "a":
		m.feedback = m.advice()
	case "count", "c":
		m.showCount = !m.showCount
	case "stats", "t":
		m.showStats = !m.showStats
	case "decks":
		m.screen = screenDecks
		m.input.Placeholder = m.deckPrompt()
	case "reset":
		m.reportError(m.session.ResetGame())
		m.screen = screenDecks
		m.input.Placeholder = m.deckPrompt()
	case "help":
		m.feedback = "Commands: bet [spot] <amt>, clear [spot], deal, hit, stand, double, split, next, advice, count, stats, decks, reset, quit"
	default:
		m.feedback = fmt.Sprintf("Unknown command %q. Try 'help'.", fields[0])
	}
	return nil
}

// parseBetArgs parses "bet <amount>" or "bet <spot> <amount>". Spot
// numbers are 1-based on the command line.
func parseBetArgs(args []string) (spot, amount int, ok bool) {
	switch len(args) {
	case 1:
		amount, err := strconv.Atoi(args[0])
		return 0, amount, err == nil
	case 2:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, false
		}
		amount, err := strconv.Atoi(args[1])
		return n - 1, amount, err == nil
	}
	return 0, 0, false
}

func (m *Model) nextRound() {
	if err := m.session.StartNewRound(); err != nil {
		m.reportError(err)
	}
}

// reportError converts a game error into player-facing feedback.
func (m *Model) reportError(err error) {
	switch {
	case err == nil:
	case err == game.ErrInsufficientShoe:
		m.feedback = "The shoe is exhausted. Type 'decks' to start a new shoe."
	case err == game.ErrShoeIntegrity:
		m.feedback = "Shoe failed its integrity check. Pick a deck count to rebuild."
	default:
		m.feedback = capitalise(err.Error())
		m.logger.Debug("command rejected", "error", err)
	}
}

// advice runs the basic strategy chart for the active hand.
func (m *Model) advice() string {
	round := m.session.Round()
	if round == nil || round.Phase() != game.PhasePlayerTurn {
		return "Advice is only available during your turn."
	}
	hand := round.ActiveHand()
	dealerCards, _ := round.Dealer()
	action := strategy.Recommend(hand.Cards, dealerCards[1])
	return fmt.Sprintf("Basic strategy says: %s", action)
}

func (m *Model) deckPrompt() string {
	counts := make([]string, len(m.cfg.Table.DeckCounts))
	for i, n := range m.cfg.Table.DeckCounts {
		counts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("How many decks? (%s)", strings.Join(counts, " or "))
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(" ♠ Blackjack Trainer ♠ "))
	content.WriteString("\n\n")

	switch m.screen {
	case screenLogin:
		content.WriteString(TableStyle.Render("Who's playing?"))
		content.WriteString("\n\n")
	case screenDecks:
		content.WriteString(TableStyle.Render(m.deckPrompt()))
		content.WriteString("\n\n")
	case screenTable:
		content.WriteString(m.renderTable())
	}

	if m.feedback != "" {
		content.WriteString(WarningStyle.Render(m.feedback))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(m.input.View())
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render("Enter to submit • Ctrl+C to quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(content.String())
}

// renderTable renders the dealer and player areas plus optional panels.
func (m *Model) renderTable() string {
	snapshot := m.session.Snapshot()
	var content strings.Builder

	status := fmt.Sprintf("Bankroll: $%d   Shoe: %d cards (%d decks)", snapshot.Bankroll, snapshot.ShoeSize, snapshot.NumDecks)
	content.WriteString(TableStyle.Render(status))
	content.WriteString("\n")
	if snapshot.LowCards {
		content.WriteString(WarningStyle.Render("Shoe running low!"))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	content.WriteString(m.renderDealer(snapshot.Dealer))
	content.WriteString("\n")
	content.WriteString(m.renderSpots(snapshot))
	content.WriteString("\n")

	content.WriteString(SuccessStyle.Render(snapshot.Message))
	content.WriteString("\n")
	if snapshot.Phase == game.PhasePlayerTurn {
		content.WriteString(ActionsStyle.Render("Actions: [hit] [stand] [double] [split] [advice]"))
		content.WriteString("\n")
	}
	if snapshot.Phase == game.PhaseComplete && !snapshot.Complete {
		content.WriteString(ActionsStyle.Render("Enter for the next hand"))
		content.WriteString("\n")
	}

	if m.showCount {
		content.WriteString("\n")
		content.WriteString(m.renderCount(snapshot))
	}
	if m.showStats {
		content.WriteString("\n")
		content.WriteString(m.renderStats(snapshot))
	}
	return content.String()
}

func (m *Model) renderDealer(dealer game.DealerView) string {
	if len(dealer.Cards) == 0 {
		return HandInfoStyle.Render("Dealer:") + " " + InfoStyle.Render("(waiting)") + "\n"
	}
	var cards []string
	for i, card := range dealer.Cards {
		if i == 0 && dealer.HoleHidden {
			cards = append(cards, HiddenCardStyle.Render("??"))
			continue
		}
		cards = append(cards, formatCard(card))
	}
	line := HandInfoStyle.Render("Dealer:") + " [" + strings.Join(cards, " ") + "]"
	if !dealer.HoleHidden {
		line += "  " + TableStyle.Render(dealer.Display)
	}
	return line + "\n"
}

func (m *Model) renderSpots(snapshot game.Snapshot) string {
	var content strings.Builder
	for spotIdx, spot := range snapshot.Spots {
		label := "You:"
		if len(snapshot.Spots) > 1 {
			label = fmt.Sprintf("Spot %d:", spotIdx+1)
		}
		if len(spot.Hands) == 0 {
			content.WriteString(HandInfoStyle.Render(label) + " " + InfoStyle.Render(fmt.Sprintf("bet $%d", spot.Bet)))
			content.WriteString("\n")
			continue
		}
		for _, hand := range spot.Hands {
			var cards []string
			for _, card := range hand.Cards {
				cards = append(cards, formatCard(card))
			}
			line := HandInfoStyle.Render(label) + " [" + strings.Join(cards, " ") + "]"
			line += "  " + TableStyle.Render(hand.Display)
			line += "  " + InfoStyle.Render(fmt.Sprintf("$%d", hand.Bet))
			if hand.Result != game.ResultUnset {
				line += "  " + resultStyle(hand.Result).Render(strings.ToUpper(hand.Result.String()))
			} else if hand.Active {
				line += "  " + ActionsStyle.Render("◀")
			}
			content.WriteString(line)
			content.WriteString("\n")
		}
	}
	return content.String()
}

func (m *Model) renderCount(snapshot game.Snapshot) string {
	var content strings.Builder
	content.WriteString(HandInfoStyle.Render("Card Counting (Hi-Lo)"))
	content.WriteString("\n")
	content.WriteString(TableStyle.Render(fmt.Sprintf(
		"Running: %+d   True: %+.1f   Decks left: %.1f",
		snapshot.RunningCount, snapshot.TrueCount, snapshot.DecksRemaining)))
	content.WriteString("\n")

	history := snapshot.CountHistory
	if len(history) > 8 {
		history = history[len(history)-8:]
	}
	for _, entry := range history {
		content.WriteString(InfoStyle.Render(fmt.Sprintf(
			"  %s  %+d  (running %+d)", entry.Card, entry.Delta, entry.Running)))
		content.WriteString("\n")
	}
	return content.String()
}

func (m *Model) renderStats(snapshot game.Snapshot) string {
	s := snapshot.Stats
	var content strings.Builder
	content.WriteString(HandInfoStyle.Render("Session Stats"))
	content.WriteString("\n")
	content.WriteString(TableStyle.Render(fmt.Sprintf(
		"Hands: %d   W/L/P: %d/%d/%d   Blackjacks: %d",
		s.HandsPlayed, s.Wins, s.Losses, s.Pushes, s.Blackjacks)))
	content.WriteString("\n")
	content.WriteString(TableStyle.Render(fmt.Sprintf(
		"Streak: %+d   Best: %+d   Worst: %+d",
		s.CurrentStreak, s.BestStreak, s.WorstStreak)))
	content.WriteString("\n")

	history := snapshot.HandHistory
	if len(history) > 5 {
		history = history[len(history)-5:]
	}
	for _, entry := range history {
		content.WriteString(InfoStyle.Render(fmt.Sprintf(
			"  #%d  %s  %+d", entry.HandNumber, entry.Result, entry.ProfitOrLoss)))
		content.WriteString("\n")
	}
	return content.String()
}

// formatCard formats a card with suit colouring.
func formatCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

func resultStyle(result game.HandResult) lipgloss.Style {
	switch result {
	case game.ResultWin, game.ResultBlackjack:
		return SuccessStyle
	case game.ResultLose:
		return ErrorStyle
	default:
		return WarningStyle
	}
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
