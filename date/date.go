// Package date provides a day-granularity Date type and the calendar
// arithmetic needed to measure expense lifetimes.
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// ShortFormat is the compact ddmmyy format used inside expense texts.
const ShortFormat = "020106"

const Day = 24 * time.Hour

// userFormats are the day-first formats accepted on the command line, tried in order.
var userFormats = []string{ShortFormat, "02.01.06", "02/01/06", "02/01/2006", "02.01.2006"}

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
//
// Out of range values are normalized the way time.Date does it, for instance
// New(2021, 2, 31) is 2021-03-03.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date in the local time zone.
func Today() Date { return New(time.Now().Date()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// IsToday reports whether d is the current date.
func (d Date) IsToday() bool { return d == Today() }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonths advances the month field by n, carrying into the year and keeping
// the day of the month.
func (d Date) AddMonths(n int) Date { return New(d.y, d.m+time.Month(n), d.d) }

// AddYears advances the year field by n keeping month and day.
// A February 29th lands on March 1st in non leap years.
func (d Date) AddYears(n int) Date { return New(d.y+n, d.m, d.d) }

// Sub returns the number of days between x and d, positive when d is after x.
// It counts Unix seconds, a time.Duration saturates after 292 years.
func (d Date) Sub(x Date) int {
	return int((d.time().Unix() - x.time().Unix()) / int64(Day/time.Second))
}

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Format returns a textual representation of the date value formatted according to the layout.
//
//	See the documentation for the [time.Format].
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// Parse parses a Date from an ISO-8601 string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return New(on.Date()), nil
}

// ParseShort parses a ddmmyy date, like "010118" for 2018-01-01.
//
// Two digit years from 69 to 99 are in the 20th century, the others in the 21st.
func ParseShort(str string) (Date, error) {
	on, err := time.Parse(ShortFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format ddmmyy: %w", str, err)
	}
	return New(on.Date()), nil
}

// ParseUser parses a date typed by a user.
//
// It accepts "0d" for today, relative dates like "-1d", "+2w", "-1m" or "+1y",
// ISO dates and the day-first formats ddmmyy, dd.mm.yy, dd/mm/yy, dd/mm/yyyy
// and dd.mm.yyyy.
func ParseUser(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "0d" || str == "" {
		return Today(), nil
	}

	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// This should not happen given the regex
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return today.AddMonths(num), nil
		case "y":
			return today.AddYears(num), nil
		}
	}

	if d, err := Parse(str); err == nil {
		return d, nil
	}
	for _, layout := range userFormats {
		if on, err := time.Parse(layout, str); err == nil {
			return New(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q, want one of yyyy-mm-dd, ddmmyy, dd.mm.yy, dd/mm/yy, dd/mm/yyyy, dd.mm.yyyy", str)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
