package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m AmountModel, text string) AmountModel {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(AmountModel)
	}
	return m
}

func press(t *testing.T, m AmountModel, key tea.KeyType) (AmountModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(AmountModel), cmd
}

func TestAmountModelEmptySelectsBalance(t *testing.T) {
	m := NewAmountModel("TEST", 5_000_000)

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	amount, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), amount)
}

func TestAmountModelExplicitAmount(t *testing.T) {
	m := typeText(t, NewAmountModel("TEST", 5_000_000), "1_250_000")

	m, _ = press(t, m, tea.KeyEnter)
	amount, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_250_000), amount)
}

func TestAmountModelRejectsOutOfRange(t *testing.T) {
	tests := []string{"0", "5000001", "abc", "-5"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			m := typeText(t, NewAmountModel("TEST", 5_000_000), input)

			m, cmd := press(t, m, tea.KeyEnter)
			assert.Nil(t, cmd)
			assert.NotEmpty(t, m.errMsg)
			assert.Contains(t, m.View(), m.errMsg)

			_, err := m.Result()
			assert.ErrorIs(t, err, ErrCancelled)
		})
	}
}

func TestAmountModelCancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := typeText(t, NewAmountModel("TEST", 10), "5")

		m, cmd := press(t, m, key)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())

		_, err := m.Result()
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Empty(t, m.View())
	}
}

func TestAmountModelView(t *testing.T) {
	view := NewAmountModel("TEST", 5_000_000).View()
	assert.Contains(t, view, "Sell TEST")
	assert.Contains(t, view, "5000000")
	assert.Contains(t, view, "5 TEST")
}

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "5", FormatTokens(5_000_000))
	assert.Equal(t, "1.25", FormatTokens(1_250_000))
	assert.Equal(t, "0.000001", FormatTokens(1))
	assert.Equal(t, "18446744073709.551615", FormatTokens(^uint64(0)))
}
