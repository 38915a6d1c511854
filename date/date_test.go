package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestCalendarArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Date
		want Date
	}{
		{"add days across year", New(2018, time.December, 31).Add(1), New(2019, time.January, 1)},
		{"add months carry year", New(2021, time.January, 1).AddMonths(12), New(2022, time.January, 1)},
		{"add months december", New(2021, time.December, 15).AddMonths(1), New(2022, time.January, 15)},
		{"add months short month", New(2021, time.January, 31).AddMonths(1), New(2021, time.March, 3)},
		{"add years leap day", New(2020, time.February, 29).AddYears(1), New(2021, time.March, 1)},
		{"add years", New(2010, time.January, 1).AddYears(20), New(2030, time.January, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		a, b Date
		want int
	}{
		{New(2018, 1, 1), New(2018, 1, 1), 0},
		{New(2019, 1, 1), New(2018, 1, 1), 365},
		{New(2021, 1, 1), New(2020, 1, 1), 366},
		{New(2018, 1, 1), New(2018, 1, 11), -10},
		{New(2320, 1, 1), New(2020, 1, 1), 109572},
		{New(2020, 1, 1), New(2320, 1, 1), -109572},
	}
	for _, tt := range tests {
		if got := tt.a.Sub(tt.b); got != tt.want {
			t.Errorf("%v.Sub(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseShort(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"010118", New(2018, time.January, 1), false},
		{"210421", New(2021, time.April, 21), false},
		{"291299", New(1999, time.December, 29), false},
		{"320118", Date{}, true},
		{"300220", Date{}, true},
		{"011318", Date{}, true},
		{"01011", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShort(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseShort(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUser(t *testing.T) {
	today := Today()
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+2w", today.Add(14), false},
		{"-1m", today.AddMonths(-1), false},
		{"+1y", today.AddYears(1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"27/12/2020", New(2020, time.December, 27), false},
		{"30.01.20", New(2020, time.January, 30), false},
		{"30/01/20", New(2020, time.January, 30), false},
		{"30.01.2020", New(2020, time.January, 30), false},
		{"300120", New(2020, time.January, 30), false},
		{"30/02/2020", Date{}, true},
		{"invalid-date", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUser(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUser(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseUser(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	r := NewRange(New(2021, 4, 21), New(2021, 5, 18))
	if got := r.Days(); got != 28 {
		t.Errorf("Days() = %d, want 28", got)
	}
	if !r.Contains(New(2021, 5, 18)) || r.Contains(New(2021, 5, 19)) {
		t.Errorf("Contains() does not include the last day only")
	}
	if got, want := r.Elapsed(New(2021, 5, 5)), 14.0/27.0; got != want {
		t.Errorf("Elapsed() = %v, want %v", got, want)
	}
	if got := r.Elapsed(r.From); got != 0 {
		t.Errorf("Elapsed(From) = %v, want 0", got)
	}
	if got := r.Elapsed(r.To); got != 1 {
		t.Errorf("Elapsed(To) = %v, want 1", got)
	}
}
