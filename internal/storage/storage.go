// Package storage holds the draw history the engines read from.
//
// DrawStore keeps the flattened series of draw numbers and the parallel list of
// date labels. Every import replaces the whole series; nothing is merged.
//
// DrawStore does no locking of its own. Callers that share a store between
// goroutines (the HTTP server) must serialize Replace against Snapshot. Replace
// always allocates fresh slices, so a snapshot taken earlier is never modified
// by a later import.
//
// SQLiteArchive optionally mirrors the last import to disk so that a restarted
// process can restore it.
package storage

import (
	"github.com/rewired-gh/draworacle/internal/models"
)

// DrawStore holds the current historical series
type DrawStore struct {
	numbers []models.DrawNumber
	dates   []string
}

// New creates an empty DrawStore
func New() *DrawStore {
	return &DrawStore{
		numbers: make([]models.DrawNumber, 0),
		dates:   make([]string, 0),
	}
}

// Replace discards the current series and stores the draws of records in import
// order. It returns the number of draw numbers stored.
func (s *DrawStore) Replace(records []models.DrawRecord) int {
	numbers := make([]models.DrawNumber, 0, len(records)*3)
	dates := make([]string, 0, len(records))

	for _, record := range records {
		dates = append(dates, record.Date)
		n := record.Numbers()
		numbers = append(numbers, n[:]...)
	}

	s.numbers = numbers
	s.dates = dates
	return len(numbers)
}

// Snapshot returns the current series. The slices must be treated as read-only.
func (s *DrawStore) Snapshot() ([]models.DrawNumber, []string) {
	return s.numbers, s.dates
}

// Len returns the number of draw numbers stored
func (s *DrawStore) Len() int {
	return len(s.numbers)
}

// Records rebuilds the imported records from the series.
func (s *DrawStore) Records() []models.DrawRecord {
	records := make([]models.DrawRecord, 0, len(s.dates))
	for i, date := range s.dates {
		base := i * 3
		if base+2 >= len(s.numbers) {
			break
		}
		records = append(records, models.DrawRecord{
			Date:   date,
			First:  s.numbers[base],
			Second: s.numbers[base+1],
			Third:  s.numbers[base+2],
		})
	}
	return records
}
