package telegram

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rewired-gh/draworacle/internal/models"
)

type stubResponder struct {
	stats       *models.Statistics
	predictions []models.PredictionResult
	err         error
}

func (s stubResponder) Statistics() (*models.Statistics, error) {
	return s.stats, s.err
}

func (s stubResponder) Predictions() ([]models.PredictionResult, error) {
	return s.predictions, s.err
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"50.0%", "50\\.0%"},
		{"-4-4", "\\-4\\-4"},
		{"a_b*c", "a\\_b\\*c"},
		{"(x)!", "\\(x\\)\\!"},
	}

	for _, tt := range tests {
		if got := escapeMarkdownV2(tt.input); got != tt.expected {
			t.Errorf("escapeMarkdownV2(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestHandleCommand_Stats(t *testing.T) {
	s := &models.Statistics{
		Categories: models.CategoryStats{Total: 2, Besar: 50, Kecil: 50, Ganjil: 0, Genap: 100},
	}
	s.Distribution[3][8] = 50
	s.Distribution[3][4] = 50

	reply := handleCommand("stats", stubResponder{stats: s})

	for _, want := range []string{"Total: 2", "Besar: 50\\.0%", "Genap: 100\\.0%", "EKOR: 4 \\(50\\.0%\\)"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestHandleCommand_Predict(t *testing.T) {
	predictions := []models.PredictionResult{
		{Number: "4444", Shio: "Monyet", Ekor: "Kecil, Genap"},
		{Number: "4444", Shio: "Monyet", Ekor: "Kecil, Genap"},
		{Number: "4444", Shio: "Monyet", Ekor: "Kecil, Genap"},
	}

	reply := handleCommand("predict", stubResponder{predictions: predictions})

	if strings.Count(reply, "*4444*") != 3 {
		t.Errorf("Expected 3 forecast lines:\n%s", reply)
	}
	if !strings.Contains(reply, "3\\. *4444* Monyet") {
		t.Errorf("Unexpected formatting:\n%s", reply)
	}
}

func TestHandleCommand_EmptySeries(t *testing.T) {
	r := stubResponder{err: models.ErrEmptySeries}

	for _, cmd := range []string{"stats", "predict"} {
		if reply := handleCommand(cmd, r); reply != "No data available" {
			t.Errorf("/%s reply = %q", cmd, reply)
		}
	}

	reply := handleCommand("stats", stubResponder{err: errors.New("boom")})
	if !strings.Contains(reply, "boom") {
		t.Errorf("Expected error text, got %q", reply)
	}
}

func TestHandleCommand_Help(t *testing.T) {
	reply := handleCommand("start", stubResponder{})
	if !strings.Contains(reply, "/stats") || !strings.Contains(reply, "/predict") {
		t.Errorf("Help does not list commands: %q", reply)
	}
}

func TestFormatImport(t *testing.T) {
	msg := formatImport("abc-123", 6)
	if !strings.Contains(msg, "6 numbers loaded") || !strings.Contains(msg, "abc\\-123") {
		t.Errorf("Unexpected import message: %q", msg)
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		attempts  int
		wantCalls int
		wantSleep []time.Duration
		wantErr   bool
	}{
		{"first try", 0, 3, 1, nil, false},
		{"second try", 1, 3, 2, []time.Duration{time.Second}, false},
		{"all fail", 5, 3, 3, []time.Duration{time.Second, 2 * time.Second}, true},
		{"single attempt", 1, 1, 1, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			var slept []time.Duration
			err := retry(tt.attempts, time.Second, func(d time.Duration) {
				slept = append(slept, d)
			}, func() error {
				calls++
				if calls <= tt.failures {
					return errors.New("unavailable")
				}
				return nil
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if len(slept) != len(tt.wantSleep) {
				t.Fatalf("slept %v, want %v", slept, tt.wantSleep)
			}
			for i := range slept {
				if slept[i] != tt.wantSleep[i] {
					t.Errorf("sleep %d = %v, want %v", i, slept[i], tt.wantSleep[i])
				}
			}
		})
	}
}
