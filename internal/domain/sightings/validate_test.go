package sightings

import (
	"context"
	"testing"
	"time"

	"wildlife-sightings/internal/domain/validation"

	"github.com/shopspring/decimal"
)

func validSighting() Sighting {
	d := time.Date(2022, 1, 12, 16, 57, 0, 0, time.UTC)
	lat, lng := decimal.RequireFromString("45.5152"), decimal.RequireFromString("122.6784")
	return Sighting{ID: "s-1", AnimalID: "a-1", Date: &d, Latitude: &lat, Longitude: &lng}
}

func TestValidate_CompleteSightingIsValid(t *testing.T) {
	if errs := Validate(context.Background(), validSighting()); !errs.Empty() {
		t.Fatalf("expected valid, got %v", errs)
	}
}

func TestValidate_EachMissingFieldIsReportedIndependently(t *testing.T) {
	cases := []struct {
		field string
		clear func(*Sighting)
	}{
		{"date", func(s *Sighting) { s.Date = nil }},
		{"latitude", func(s *Sighting) { s.Latitude = nil }},
		{"longitude", func(s *Sighting) { s.Longitude = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			s := validSighting()
			tc.clear(&s)

			errs := Validate(context.Background(), s)
			got := errs.On(tc.field)
			if len(got) != 1 || got[0] != validation.MsgBlank {
				t.Fatalf("expected %s can't be blank, got %#v", tc.field, errs)
			}
			if len(errs) != 1 {
				t.Fatalf("expected only %s to fail, got %#v", tc.field, errs)
			}
		})
	}
}

func TestValidate_AllMissing(t *testing.T) {
	errs := Validate(context.Background(), Sighting{AnimalID: "a-1"})
	for _, f := range []string{"date", "latitude", "longitude"} {
		if len(errs.On(f)) == 0 {
			t.Fatalf("expected error on %s, got %#v", f, errs)
		}
	}
}

func TestValidate_ZeroDateIsBlank(t *testing.T) {
	s := validSighting()
	zero := time.Time{}
	s.Date = &zero

	if len(Validate(context.Background(), s).On("date")) == 0 {
		t.Fatalf("expected zero date to fail presence")
	}
}

func TestValidate_NoCoordinateRange(t *testing.T) {
	s := validSighting()
	lat, lng := decimal.NewFromInt(999), decimal.NewFromInt(-999)
	s.Latitude, s.Longitude = &lat, &lng

	if errs := Validate(context.Background(), s); !errs.Empty() {
		t.Fatalf("out-of-range coordinates must still be valid, got %v", errs)
	}
}

func TestValidate_RequiresOwner(t *testing.T) {
	s := validSighting()
	s.AnimalID = ""

	got := Validate(context.Background(), s).On("animal")
	if len(got) != 1 || got[0] != validation.MsgMustExist {
		t.Fatalf("expected animal must exist, got %#v", got)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	s := validSighting()
	s.Latitude = nil

	first := Validate(context.Background(), s)
	second := Validate(context.Background(), s)
	if first.Error() != second.Error() {
		t.Fatalf("expected same result, got %q vs %q", first.Error(), second.Error())
	}
	if s.Latitude != nil {
		t.Fatalf("validation must not mutate the record")
	}
}
