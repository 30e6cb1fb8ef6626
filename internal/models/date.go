package models

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout to format daty używany przez API (LocalDate, bez czasu)
const dateLayout = "2006-01-02"

// Date reprezentuje datę bez składnika czasu, serializowaną jako "RRRR-MM-DD"
type Date struct {
	time.Time
}

// NewDate tworzy datę z roku, miesiąca i dnia
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today zwraca dzisiejszą datę (bez czasu)
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parsuje datę w formacie "RRRR-MM-DD"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("nieprawidłowy format daty %q: %w", s, err)
	}
	return Date{t}, nil
}

// AddDays zwraca datę przesuniętą o podaną liczbę dni
func (d Date) AddDays(days int) Date {
	return Date{d.Time.AddDate(0, 0, days)}
}

// AddYears zwraca datę przesuniętą o podaną liczbę lat
func (d Date) AddYears(years int) Date {
	return Date{d.Time.AddDate(years, 0, 0)}
}

// Before sprawdza czy data jest wcześniejsza niż podana
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After sprawdza czy data jest późniejsza niż podana
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal sprawdza czy daty są identyczne
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// DaysSince zwraca liczbę pełnych dni od podanej daty
func (d Date) DaysSince(other Date) int {
	return int(d.Time.Sub(other.Time).Hours() / 24)
}

// String zwraca datę w formacie "RRRR-MM-DD"
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// MarshalJSON serializuje datę jako "RRRR-MM-DD" (null dla daty zerowej)
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parsuje datę z "RRRR-MM-DD"; null i pusty string dają datę zerową
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
