package sightings

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDecodeBody_WrappedAndFlat(t *testing.T) {
	for name, body := range map[string]string{
		"wrapped": `{"sighting":{"date":"2022-01-12 16:57","latitude":"45.5152","longitude":122.6784}}`,
		"flat":    `{"date":"2022-01-12 16:57","latitude":"45.5152","longitude":122.6784}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, attrs, err := DecodeBody(strings.NewReader(body))
			if err != nil {
				t.Fatalf("DecodeBody error: %v", err)
			}
			a := ParseAttributes(attrs)

			want := time.Date(2022, 1, 12, 16, 57, 0, 0, time.UTC)
			if !a.Date.Present || a.Date.Value == nil || !a.Date.Value.Equal(want) {
				t.Fatalf("unexpected date: %#v", a.Date)
			}
			if a.Latitude.Value == nil || !a.Latitude.Value.Equal(decimal.RequireFromString("45.5152")) {
				t.Fatalf("unexpected latitude: %#v", a.Latitude)
			}
			if a.Longitude.Value == nil || !a.Longitude.Value.Equal(decimal.RequireFromString("122.6784")) {
				t.Fatalf("unexpected longitude: %#v", a.Longitude)
			}
		})
	}
}

func TestDecodeBody_EmptyBody(t *testing.T) {
	body, attrs, err := DecodeBody(strings.NewReader("  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) != 0 || len(attrs) != 0 {
		t.Fatalf("expected empty maps, got %v %v", body, attrs)
	}
}

func TestDecodeBody_InvalidJSON(t *testing.T) {
	if _, _, err := DecodeBody(strings.NewReader(`{"date":`)); err == nil {
		t.Fatalf("expected error")
	}
	if _, _, err := DecodeBody(strings.NewReader(`{"sighting":"nope"}`)); err == nil {
		t.Fatalf("expected error for non-object wrapper")
	}
}

func TestParseAttributes_KeepsDecimalPrecision(t *testing.T) {
	_, attrs, _ := DecodeBody(strings.NewReader(`{"latitude":45.123456789012345678,"longitude":"122.123456789012345678"}`))
	a := ParseAttributes(attrs)

	if a.Latitude.Value == nil || a.Latitude.Value.String() != "45.123456789012345678" {
		t.Fatalf("latitude lost digits: %#v", a.Latitude)
	}
	if a.Longitude.Value == nil || a.Longitude.Value.String() != "122.123456789012345678" {
		t.Fatalf("longitude lost digits: %#v", a.Longitude)
	}
}

func TestParseAttributes_DropsUnknownFields(t *testing.T) {
	_, attrs, _ := DecodeBody(strings.NewReader(`{"id":"forged","animal_id":"x","created_at":"2020-01-01","latitude":1}`))
	a := ParseAttributes(attrs)

	if a.Date.Present || a.Longitude.Present {
		t.Fatalf("only latitude should be present: %#v", a)
	}
	if !a.Latitude.Present {
		t.Fatalf("expected latitude present")
	}

	s := Sighting{ID: "real", AnimalID: "owner"}
	a.Apply(&s)
	if s.ID != "real" || s.AnimalID != "owner" {
		t.Fatalf("non-permitted fields leaked: %#v", s)
	}
}

func TestParseAttributes_UnparseableIsAbsent(t *testing.T) {
	_, attrs, _ := DecodeBody(strings.NewReader(`{"date":"yesterday","latitude":"north","longitude":""}`))
	a := ParseAttributes(attrs)

	if !a.Date.Present || a.Date.Value != nil {
		t.Fatalf("expected present-but-nil date, got %#v", a.Date)
	}
	if !a.Latitude.Present || a.Latitude.Value != nil {
		t.Fatalf("expected present-but-nil latitude, got %#v", a.Latitude)
	}
	if !a.Longitude.Present || a.Longitude.Value != nil {
		t.Fatalf("expected present-but-nil longitude, got %#v", a.Longitude)
	}
}

func TestParseTime_Layouts(t *testing.T) {
	want := time.Date(2022, 1, 12, 16, 57, 0, 0, time.UTC)
	for _, in := range []string{
		"2022-01-12T16:57:00Z",
		"2022-01-12T17:57:00+01:00",
		"2022-01-12T16:57:00",
		"2022-01-12T16:57",
		"2022-01-12 16:57:00",
		"2022-01-12 16:57",
	} {
		got, ok := ParseTime(in)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseTime(%q) = %v, %v", in, got, ok)
		}
	}

	day, ok := ParseTime("2022-01-12")
	if !ok || !day.Equal(time.Date(2022, 1, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only must mean midnight UTC, got %v", day)
	}

	if _, ok := ParseTime("12/01/2022"); ok {
		t.Fatalf("expected unsupported layout to fail")
	}
}

func TestListFilter_InclusiveBounds(t *testing.T) {
	from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC)
	f := ListFilter{From: &from, To: &to}

	at := func(d time.Time) Sighting { return Sighting{Date: &d} }

	if !f.Matches(at(from)) || !f.Matches(at(to)) {
		t.Fatalf("bounds must be inclusive")
	}
	if f.Matches(at(to.Add(time.Second))) || f.Matches(at(from.Add(-time.Second))) {
		t.Fatalf("outside range must not match")
	}

	open := ListFilter{From: &from}
	if !open.Matches(at(to.AddDate(10, 0, 0))) {
		t.Fatalf("missing end bound must be open")
	}
}
