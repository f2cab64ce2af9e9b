package ingest

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	ErrDateOutOfRange        = errors.New("日付が範囲外です")
	ErrUnsupportedDateFormat = errors.New("対応していない日付のフォーマットです。対応フォーマット：yyyy/MM/dd, yyyy-MM-dd, yyyyMMdd")
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([0-9]{4})/([0-9]{2})/([0-9]{2})`),
	regexp.MustCompile(`([0-9]{4})-([0-9]{2})-([0-9]{2})`),
	regexp.MustCompile(`([0-9]{4})([0-9]{2})([0-9]{2})`),
}

// Date is a calendar date in the Gregorian era
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ParseDate accepts yyyy/MM/dd, yyyy-MM-dd and yyyyMMdd
func ParseDate(s string) (Date, error) {
	for _, re := range datePatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo > 12 || d > 31 {
			return Date{}, fmt.Errorf("%w: %s", ErrDateOutOfRange, s)
		}
		return Date{Year: y, Month: mo, Day: d}, nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrUnsupportedDateFormat, s)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o
func (d Date) Compare(o Date) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// Before reports whether d is strictly before o
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compact formats the date as yyyyMMdd
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// MarshalJSON writes the date as yyyy-MM-dd
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a date string or a {"year","month","day"} object
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseDate(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	type plain Date
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Date(p)
	return nil
}
