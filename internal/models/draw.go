// Package models defines the core domain entities for the draworacle application.
// These models represent 4-digit lottery draws, the statistics computed over a draw
// series, and the forecast entries produced by the prediction engine.
//
// Terminology (matching the lottery's own naming):
//   - AS, KOP, KEPALA, EKOR: digit positions 0-3 of a draw (thousands to units).
//   - Besar/Kecil: last digit >= 5 / < 5.
//   - Ganjil/Genap: last digit odd / even.
//   - Shio: Chinese zodiac animal attached to a forecast.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySeries is returned by the engines when no draws have been imported yet.
var ErrEmptySeries = errors.New("no data available")

// MaxDrawNumber is the largest value a 4-digit draw can take.
const MaxDrawNumber = 9999

// DrawNumber is a single 4-digit draw result in [0, 9999].
type DrawNumber int

// Valid reports whether n fits the 4-digit format.
func (n DrawNumber) Valid() bool {
	return n >= 0 && n <= MaxDrawNumber
}

// Digits decomposes n into its zero-padded digits, leftmost first.
func (n DrawNumber) Digits() [4]int {
	v := int(n)
	var d [4]int
	for i := 3; i >= 0; i-- {
		d[i] = v % 10
		v /= 10
	}
	return d
}

// LastDigit returns the EKOR digit.
func (n DrawNumber) LastDigit() int {
	return int(n) % 10
}

// String renders n as exactly 4 digits.
func (n DrawNumber) String() string {
	return fmt.Sprintf("%04d", int(n))
}

// DrawRecord is one row of imported history: a date label and the first, second
// and third draws of that date.
type DrawRecord struct {
	Date   string     `json:"date"`
	First  DrawNumber `json:"first"`
	Second DrawNumber `json:"second"`
	Third  DrawNumber `json:"third"`
}

// Numbers returns the three draws of the record in import order.
func (r DrawRecord) Numbers() [3]DrawNumber {
	return [3]DrawNumber{r.First, r.Second, r.Third}
}

// Validate checks that all record fields are valid
func (r *DrawRecord) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date must not be empty")
	}
	if !r.First.Valid() {
		return fmt.Errorf("first draw %d must be between 0 and %d", r.First, MaxDrawNumber)
	}
	if !r.Second.Valid() {
		return fmt.Errorf("second draw %d must be between 0 and %d", r.Second, MaxDrawNumber)
	}
	if !r.Third.Valid() {
		return fmt.Errorf("third draw %d must be between 0 and %d", r.Third, MaxDrawNumber)
	}
	return nil
}
