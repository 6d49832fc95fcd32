package logger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func readJournal(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestTradeJournalRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades", "journal.csv")

	j, err := NewTradeJournal(path, time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)

	ts := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.Record(TradeRecord{
		Time:      ts,
		Wallet:    "wallet",
		Mint:      "mint",
		Side:      "buy",
		Amount:    1_000_000_000,
		SolLimit:  1_100_000_000,
		Signature: "sig",
	}))
	assert.Equal(t, uint64(1), j.Records())
	require.NoError(t, j.Close())

	rows := readJournal(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, journalHeader, rows[0])
	assert.Equal(t, []string{"2024-06-10T12:00:00Z", "wallet", "mint", "buy", "1000000000", "1100000000", "sig"}, rows[1])
}

func TestTradeJournalAppendsWithoutSecondHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	logger := zaptest.NewLogger(t)

	for i := 0; i < 2; i++ {
		j, err := NewTradeJournal(path, time.Hour, logger)
		require.NoError(t, err)
		require.NoError(t, j.Record(TradeRecord{Time: time.Now(), Side: "sell", Signature: fmt.Sprint(i)}))
		require.NoError(t, j.Close())
	}

	rows := readJournal(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, "0", rows[1][6])
	assert.Equal(t, "1", rows[2][6])
}

func TestTradeJournalConcurrentRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	j, err := NewTradeJournal(path, 10*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for k := 0; k < 25; k++ {
				assert.NoError(t, j.Record(TradeRecord{Time: time.Now(), Side: "buy", Amount: uint64(id*100 + k)}))
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, j.Close())

	assert.Len(t, readJournal(t, path), 1+8*25)
}
