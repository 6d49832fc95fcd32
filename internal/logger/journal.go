// internal/logger/journal.go
package logger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

var journalHeader = []string{"timestamp", "wallet", "mint", "side", "amount", "sol_limit", "signature"}

// TradeRecord is one submitted trade.
type TradeRecord struct {
	Time      time.Time
	Wallet    string
	Mint      string
	Side      string
	Amount    uint64 // lamports for buys, raw token units for sells
	SolLimit  uint64 // max SOL in for buys, min SOL out for sells
	Signature string
}

func (r TradeRecord) fields() []string {
	return []string{
		r.Time.UTC().Format(time.RFC3339),
		r.Wallet,
		r.Mint,
		r.Side,
		strconv.FormatUint(r.Amount, 10),
		strconv.FormatUint(r.SolLimit, 10),
		r.Signature,
	}
}

// TradeJournal appends submitted trades to a CSV file. It is safe for concurrent use.
type TradeJournal struct {
	mu       sync.Mutex
	writer   *csv.Writer
	file     *os.File
	ticker   *time.Ticker
	done     chan struct{}
	logger   *zap.Logger
	filePath string

	writtenRecords uint64
}

// NewTradeJournal opens (or creates) the journal at filePath and flushes it every flushInterval.
func NewTradeJournal(filePath string, flushInterval time.Duration, logger *zap.Logger) (*TradeJournal, error) {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	j := &TradeJournal{
		writer:   csv.NewWriter(file),
		file:     file,
		ticker:   time.NewTicker(flushInterval),
		done:     make(chan struct{}),
		logger:   logger,
		filePath: filePath,
	}

	// Заголовок только для пустого файла
	if stat.Size() == 0 {
		if err := j.writer.Write(journalHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		j.writer.Flush()
	}

	go j.periodicFlush()

	return j, nil
}

// Record appends a trade.
func (j *TradeJournal) Record(r TradeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.writer.Write(r.fields()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	j.writtenRecords++
	return nil
}

// Flush forces a write of any buffered data
func (j *TradeJournal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.flushLocked()
}

func (j *TradeJournal) flushLocked() error {
	j.writer.Flush()
	if err := j.writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}

func (j *TradeJournal) periodicFlush() {
	for {
		select {
		case <-j.ticker.C:
			if err := j.Flush(); err != nil {
				j.logger.Error("Periodic journal flush failed",
					zap.String("file", j.filePath),
					zap.Error(err))
			}
		case <-j.done:
			return
		}
	}
}

// Close stops the periodic flush and closes the file.
func (j *TradeJournal) Close() error {
	close(j.done)
	j.ticker.Stop()

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.flushLocked(); err != nil {
		j.file.Close()
		return err
	}
	if err := j.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	j.logger.Debug("Trade journal closed",
		zap.String("file", j.filePath),
		zap.Uint64("written_records", j.writtenRecords))
	return nil
}

// Records returns the number of records written since open.
func (j *TradeJournal) Records() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.writtenRecords
}
