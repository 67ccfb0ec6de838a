// Package oracle ties the draw store to the statistics and prediction engines.
//
// Oracle is the single owner of the shared DrawStore. It serializes imports
// against reads with a RWMutex: an import takes the write lock for the Replace
// only, and reads take a snapshot under the read lock and compute outside it.
// Imports are last-write-wins; two concurrent uploads race and the one that
// takes the lock last is kept. A separate import mutex is held across Replace
// and the archive write, so the archive always holds the import being served.
package oracle

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rewired-gh/draworacle/internal/logger"
	"github.com/rewired-gh/draworacle/internal/models"
	"github.com/rewired-gh/draworacle/internal/predict"
	"github.com/rewired-gh/draworacle/internal/stats"
	"github.com/rewired-gh/draworacle/internal/storage"
)

// Archive persists the last import across restarts
type Archive interface {
	Save(ctx context.Context, importID string, records []models.DrawRecord) error
	Load(ctx context.Context) (string, []models.DrawRecord, error)
}

// ImportListener is told about every successful import
type ImportListener interface {
	NotifyImport(importID string, count int) error
}

// ImportResult describes a completed import
type ImportResult struct {
	ID    string
	Count int
}

// Oracle serves statistics and forecasts over the most recent import
type Oracle struct {
	mu        sync.RWMutex
	importMu  sync.Mutex
	store     *storage.DrawStore
	archive   Archive
	listeners []ImportListener
	lastID    string
	notifyWG  sync.WaitGroup
}

// Option configures an Oracle
type Option func(*Oracle)

// WithArchive mirrors every import to a.
func WithArchive(a Archive) Option {
	return func(o *Oracle) {
		o.archive = a
	}
}

// WithListener registers l for import notifications.
func WithListener(l ImportListener) Option {
	return func(o *Oracle) {
		o.listeners = append(o.listeners, l)
	}
}

// New creates an Oracle over store
func New(store *storage.DrawStore, opts ...Option) *Oracle {
	o := &Oracle{store: store}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Restore loads the archived import into the store, if there is one.
func (o *Oracle) Restore(ctx context.Context) (int, error) {
	if o.archive == nil {
		return 0, nil
	}

	importID, records, err := o.archive.Load(ctx)
	if err != nil {
		return 0, err
	}
	if importID == "" {
		return 0, nil
	}

	o.mu.Lock()
	count := o.store.Replace(records)
	o.lastID = importID
	o.mu.Unlock()

	logger.Info("Restored import %s (%d numbers)", importID, count)
	return count, nil
}

// Import replaces the draw history with records. Archive and listener failures
// are logged and do not fail the import. The archive write is not tied to ctx
// cancellation so that memory and archive cannot diverge.
func (o *Oracle) Import(ctx context.Context, records []models.DrawRecord) ImportResult {
	importID := uuid.New().String()

	o.importMu.Lock()
	defer o.importMu.Unlock()

	o.mu.Lock()
	count := o.store.Replace(records)
	o.lastID = importID
	stored := o.store.Records()
	o.mu.Unlock()

	logger.Info("Imported %d records (%d numbers) as %s", len(records), count, importID)

	if o.archive != nil {
		if err := o.archive.Save(context.WithoutCancel(ctx), importID, stored); err != nil {
			logger.Warn("Failed to archive import %s: %v", importID, err)
		}
	}

	for _, l := range o.listeners {
		o.notifyWG.Add(1)
		go func(l ImportListener) {
			defer o.notifyWG.Done()
			if err := l.NotifyImport(importID, count); err != nil {
				logger.Warn("Failed to send import notification: %v", err)
			}
		}(l)
	}

	return ImportResult{ID: importID, Count: count}
}

// Statistics computes statistics over the current history.
func (o *Oracle) Statistics() (*models.Statistics, error) {
	return stats.Compute(o.numbers())
}

// Predictions forecasts the next draw from the current history.
func (o *Oracle) Predictions() ([]models.PredictionResult, error) {
	return predict.Predict(o.numbers())
}

// Count returns the number of draw numbers currently held.
func (o *Oracle) Count() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.store.Len()
}

// LastImportID returns the ID of the import currently served, or "" if none.
func (o *Oracle) LastImportID() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastID
}

// Wait blocks until pending import notifications have been delivered.
func (o *Oracle) Wait() {
	o.notifyWG.Wait()
}

func (o *Oracle) numbers() []models.DrawNumber {
	o.mu.RLock()
	defer o.mu.RUnlock()
	numbers, _ := o.store.Snapshot()
	return numbers
}
