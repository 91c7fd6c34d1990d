// Package activity maintains the bank's append-only activity feed.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxEntries caps the feed; the oldest entries are dropped first, by
// insertion order.
const maxEntries = 1000

// Logger records notable actions in the bank activity feed. Recording is
// best-effort: a failure is logged and swallowed so it can never fail the
// operation being recorded.
type Logger struct {
	dir *directory.Directory
	log *slog.Logger
}

// NewLogger creates an activity Logger over the given directory
func NewLogger(dir *directory.Directory, log *slog.Logger) *Logger {
	return &Logger{dir: dir, log: log}
}

// Record appends an entry to the front of the feed
func (l *Logger) Record(ctx context.Context, logType models.LogType, action, details, userEmail string) {
	l.record(ctx, models.LogEntry{
		Type:      logType,
		Action:    action,
		Details:   details,
		UserEmail: userEmail,
	})
}

// RecordAmount appends an entry carrying an amount and a status
func (l *Logger) RecordAmount(ctx context.Context, logType models.LogType, action, details, userEmail string, amount decimal.Decimal, status string) {
	l.record(ctx, models.LogEntry{
		Type:      logType,
		Action:    action,
		Details:   details,
		UserEmail: userEmail,
		Amount:    &amount,
		Status:    status,
	})
}

func (l *Logger) record(ctx context.Context, entry models.LogEntry) {
	entry.ID = uuid.New().String()
	entry.Timestamp = time.Now()

	// The prepend is a read-modify-write over the whole collection, so it
	// must hold the directory write guard like any other mutation.
	err := l.dir.Update(ctx, func(ctx context.Context) error {
		logs, err := l.dir.BankLogs(ctx)
		if err != nil {
			return err
		}

		// newest first
		logs = append([]models.LogEntry{entry}, logs...)
		if len(logs) > maxEntries {
			logs = logs[:maxEntries]
		}
		return l.dir.SaveBankLogs(ctx, logs)
	})
	if err != nil {
		l.log.Error("failed to record activity", "error", err, "action", entry.Action)
	}
}
