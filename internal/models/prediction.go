package models

import (
	"strconv"
	"strings"
)

// Shio is the fixed zodiac table used to label forecasts. Order is significant.
var Shio = [12]string{
	"Tikus", "Kerbau", "Macan", "Kelinci", "Naga", "Ular",
	"Kuda", "Kambing", "Monyet", "Ayam", "Anjing", "Babi",
}

// PredictionResult is a single forecast entry
type PredictionResult struct {
	Number string `json:"number"`
	Shio   string `json:"shio"`
	Ekor   string `json:"ekor"`
}

// ShioFor returns the zodiac for a two-digit value, wrapping modulo 12.
// Negative values wrap the same way, so the result is always a table entry.
func ShioFor(twoDigits int) string {
	idx := twoDigits % len(Shio)
	if idx < 0 {
		idx += len(Shio)
	}
	return Shio[idx]
}

// IsBesar reports whether a last digit counts as big.
func IsBesar(digit int) bool {
	return digit >= 5
}

// IsGenap reports whether a last digit is even.
func IsGenap(digit int) bool {
	return digit%2 == 0
}

// EkorLabel formats the category descriptor of a last digit, e.g. "Besar, Genap".
func EkorLabel(digit int) string {
	size := "Kecil"
	if IsBesar(digit) {
		size = "Besar"
	}
	parity := "Ganjil"
	if IsGenap(digit) {
		parity = "Genap"
	}
	return size + ", " + parity
}

// JoinDigits concatenates the decimal form of each digit. Digits outside 0-9 are
// written as-is, so the result may be longer than len(digits).
func JoinDigits(digits []int) string {
	var b strings.Builder
	for _, d := range digits {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

// ConcatValue reads two digits as one integer by decimal concatenation, so
// (4, 7) gives 47 and (10, 10) gives 1010. A negative digit makes the whole value
// negative: (-1, -1) gives -11.
func ConcatValue(hi, lo int) int {
	neg := hi < 0 || lo < 0
	h, l := abs(hi), abs(lo)
	shift := 1
	for v := l; ; v /= 10 {
		shift *= 10
		if v < 10 {
			break
		}
	}
	v := h*shift + l
	if neg {
		return -v
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
