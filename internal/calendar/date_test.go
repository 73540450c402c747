package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseFlexibleAcceptsBothForms(t *testing.T) {
	cases := map[string]string{
		"2024-01-05":   "2024-01-05",
		"1/5/2024":     "2024-01-05",
		"01/05/2024":   "2024-01-05",
		" 12/31/2023 ": "2023-12-31",
		"2/29/2024":    "2024-02-29",
	}
	for in, want := range cases {
		got, ok := ParseFlexible(in)
		if !ok {
			t.Fatalf("ParseFlexible(%q) rejected", in)
		}
		if got.String() != want {
			t.Fatalf("ParseFlexible(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseFlexibleRejectsOtherInput(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024/01/05", "2/30/2024", "13/1/2024", "2024-1-5", "1/5/24", "2023-02-29"} {
		if d, ok := ParseFlexible(in); ok {
			t.Fatalf("ParseFlexible(%q) accepted as %s", in, d)
		}
	}
}

func TestParseIsStrict(t *testing.T) {
	if _, err := Parse("1/5/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	d, err := Parse("2026-02-09")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.February || d.Day() != 9 {
		t.Fatalf("unexpected date: %s", d)
	}
}

func TestAddDaysAndDaysBetween(t *testing.T) {
	base := New(2024, time.February, 27)
	if got := AddDays(base, 3).String(); got != "2024-03-01" {
		t.Fatalf("AddDays across leap day = %s", got)
	}
	if got := AddDays(base, -58).String(); got != "2023-12-31" {
		t.Fatalf("AddDays backwards = %s", got)
	}
	if n := DaysBetween(base, New(2024, time.March, 1)); n != 3 {
		t.Fatalf("DaysBetween = %d, want 3", n)
	}
	if n := DaysBetween(New(2024, time.March, 1), base); n != -3 {
		t.Fatalf("DaysBetween reversed = %d, want -3", n)
	}
	if n := DaysBetween(New(2023, time.January, 1), New(2024, time.January, 1)); n != 365 {
		t.Fatalf("DaysBetween over a year = %d", n)
	}
}

func TestOrdering(t *testing.T) {
	a := New(2026, time.February, 9)
	b := AddDays(a, 1)
	if !a.Before(b) || !b.After(a) || a.After(b) || a.Equal(b) {
		t.Fatalf("unexpected ordering between %s and %s", a, b)
	}
	if !a.Equal(New(2026, time.February, 9)) {
		t.Fatal("expected equal dates")
	}
}

func TestFromTimeIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	late := time.Date(2026, 2, 9, 23, 59, 0, 0, loc)
	if got := FromTime(late).String(); got != "2026-02-09" {
		t.Fatalf("FromTime = %s", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		When Date `json:"when"`
	}
	raw, err := json.Marshal(wrapper{When: New(2024, time.January, 5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"when":"2024-01-05"}` {
		t.Fatalf("unexpected json: %s", raw)
	}
	var back wrapper
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.When.Equal(New(2024, time.January, 5)) {
		t.Fatalf("round trip mismatch: %s", back.When)
	}
	if err := json.Unmarshal([]byte(`{"when":"1/5/2024"}`), &back); err == nil {
		t.Fatal("expected strict parse failure for slash date in json")
	}
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2026, 2, 28, 17, 30, 0, 0, time.UTC)
	got := NextMidnight(now)
	if got.Format(time.RFC3339) != "2026-03-01T00:00:00Z" {
		t.Fatalf("NextMidnight = %s", got.Format(time.RFC3339))
	}
}
