package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout — формат календарной даты на проводе и в хранилище страниц.
const DateLayout = "2006-01-02"

// Date — календарная дата без времени.
// Внутри всегда полночь UTC, поэтому даты можно сравнивать через Compare.
type Date struct {
	time.Time
}

// NewDate собирает дату из года, месяца и дня.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает "YYYY-MM-DD". Для устойчивости к источнику принимается
// и полная метка RFC3339 — от неё остаётся только календарная часть.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, fmt.Errorf("empty date")
	}

	if t, err := time.Parse(DateLayout, value); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}

	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Compare сравнивает даты: -1, 0 или +1.
func (d Date) Compare(other Date) int {
	return d.Time.Compare(other.Time)
}

// String возвращает дату в формате YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON пишет дату как строку YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON читает дату из строки; null оставляет нулевое значение.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date: %w", err)
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}
