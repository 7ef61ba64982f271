package scoring

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/expscore/internal/entries"
)

// Accepted year range.
const (
	MinYear = 1900
	MaxYear = 2100
)

var (
	// ErrAbsent marks a date that has not been supplied yet. It is not shown to users.
	ErrAbsent = errors.New("date absent")
	// ErrInvalidFormat marks text that is not a real DD/MM/YYYY calendar date.
	ErrInvalidFormat = errors.New("invalid date format")
)

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Time returns d at UTC midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b Date) int {
	return int(math.Round(b.Time().Sub(a.Time()).Hours() / 24))
}

// ParseDate parses DD/MM/YYYY text. Unmasked digit strings such as "01072024"
// are accepted. Empty text yields ErrAbsent; anything that is not a real
// calendar date between MinYear and MaxYear yields ErrInvalidFormat.
func ParseDate(text string) (Date, error) {
	if text == "" {
		return Date{}, ErrAbsent
	}

	parts := strings.Split(entries.Mask(text), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]

	if day < 1 || day > 31 || month < 1 || month > 12 || year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, text)
	}

	// time.Date normalizes overflow (31/04 -> 01/05), so a mismatch means the day does not exist.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return Date{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidFormat, text)
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}
