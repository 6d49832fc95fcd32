// Package prompt implements the interactive sell amount selection.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/pumpfun-trader/internal/ui/style"
	"github.com/shopspring/decimal"
)

// ErrCancelled is returned when the user leaves the prompt without choosing.
var ErrCancelled = errors.New("amount selection cancelled")

// tokenDecimals is used only to display the balance in whole tokens.
const tokenDecimals = 6

// AmountModel asks for a raw token amount in [1, balance]. Enter on empty input selects the whole balance.
type AmountModel struct {
	input   textinput.Model
	styles  style.Styles
	symbol  string
	balance uint64

	amount    uint64
	done      bool
	cancelled bool
	errMsg    string
}

// NewAmountModel creates the prompt for a token with the given symbol and raw balance.
func NewAmountModel(symbol string, balance uint64) AmountModel {
	ti := textinput.New()
	ti.Placeholder = "all"
	ti.CharLimit = 20
	ti.Width = 24
	ti.Focus()

	return AmountModel{
		input:   ti,
		styles:  style.NewStyles(style.DefaultPalette()),
		symbol:  symbol,
		balance: balance,
	}
}

func (m AmountModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AmountModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			amount, err := m.parse(m.input.Value())
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.amount = amount
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.errMsg = ""
	return m, cmd
}

func (m AmountModel) parse(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return m.balance, nil
	}
	amount, err := strconv.ParseUint(strings.ReplaceAll(raw, "_", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number of token units", raw)
	}
	if amount == 0 || amount > m.balance {
		return 0, fmt.Errorf("amount must be between 1 and %d", m.balance)
	}
	return amount, nil
}

func (m AmountModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sell "+m.symbol) + "\n")
	b.WriteString(m.styles.Label.Render("Balance: ") +
		m.styles.Value.Render(fmt.Sprintf("%d", m.balance)) +
		m.styles.Label.Render(fmt.Sprintf(" (%s %s)", FormatTokens(m.balance), m.symbol)) + "\n\n")
	b.WriteString(m.styles.Input.Render(m.input.View()) + "\n")
	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString(m.styles.Help.Render("enter: confirm (empty = all) • esc: cancel") + "\n")
	return b.String()
}

// Result returns the chosen amount, or ErrCancelled.
func (m AmountModel) Result() (uint64, error) {
	if !m.done {
		return 0, ErrCancelled
	}
	return m.amount, nil
}

// FormatTokens renders a raw token amount in whole tokens.
func FormatTokens(raw uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -tokenDecimals).String()
}

// Selector runs the amount prompt on a terminal.
type Selector struct {
	In  io.Reader
	Out io.Writer
}

// SelectAmount shows the prompt and blocks until the user confirms or cancels.
func (s Selector) SelectAmount(ctx context.Context, symbol string, balance uint64) (uint64, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if s.In != nil {
		opts = append(opts, tea.WithInput(s.In))
	}
	if s.Out != nil {
		opts = append(opts, tea.WithOutput(s.Out))
	}

	final, err := tea.NewProgram(NewAmountModel(symbol, balance), opts...).Run()
	if err != nil {
		return 0, fmt.Errorf("amount prompt: %w", err)
	}
	return final.(AmountModel).Result()
}
