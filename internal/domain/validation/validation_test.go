package validation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type item struct {
	name string
	size int
}

func TestRun_AggregatesAllRulesInOrder(t *testing.T) {
	rules := []Rule[item]{
		Presence("name", func(i item) bool { return !Blank(i.name) }),
		func(_ context.Context, i item) ([]Failure, error) {
			if i.size <= 0 {
				return []Failure{{Field: "size", Message: MsgInvalid}}, nil
			}
			return nil, nil
		},
		func(_ context.Context, _ item) ([]Failure, error) {
			return []Failure{{Field: "name", Message: MsgTaken}}, nil
		},
	}

	errs, err := Run(context.Background(), item{name: "  "}, rules)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	got := errs.On("name")
	if len(got) != 2 || got[0] != MsgBlank || got[1] != MsgTaken {
		t.Fatalf("expected [blank, taken] on name, got %#v", got)
	}
	if len(errs.On("size")) != 1 {
		t.Fatalf("expected size error, got %#v", errs)
	}
}

func TestRun_StopsOnInfrastructureError(t *testing.T) {
	boom := errors.New("db down")
	rules := []Rule[item]{
		func(context.Context, item) ([]Failure, error) { return nil, boom },
	}

	errs, err := Run(context.Background(), item{}, rules)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if errs != nil {
		t.Fatalf("expected nil errors on failure, got %#v", errs)
	}
}

func TestErrors_IsErrInvalidAndSerializesAsMap(t *testing.T) {
	errs := Errors{}
	errs.Add("common_name", MsgBlank)

	var err error = errs
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected errors.Is(err, ErrInvalid)")
	}

	got, ok := AsErrors(err)
	if !ok || len(got.On("common_name")) != 1 {
		t.Fatalf("AsErrors did not recover the map: %#v", got)
	}

	b, _ := json.Marshal(errs)
	if string(b) != `{"common_name":["can't be blank"]}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestErrors_ErrorIsDeterministic(t *testing.T) {
	errs := Errors{}
	errs.Add("latitude", MsgBlank)
	errs.Add("date", MsgBlank)

	want := "validation failed: date can't be blank; latitude can't be blank"
	if errs.Error() != want {
		t.Fatalf("expected %q, got %q", want, errs.Error())
	}
}

func TestErrors_MergePrefixesAndDedups(t *testing.T) {
	errs := Errors{}
	errs.Merge("sightings", Errors{"date": {MsgBlank}})
	errs.Merge("sightings", Errors{"date": {MsgBlank}, "latitude": {MsgBlank}})

	if got := errs.On("sightings.date"); len(got) != 1 {
		t.Fatalf("expected one deduped message, got %#v", got)
	}
	if got := errs.On("sightings.latitude"); len(got) != 1 {
		t.Fatalf("expected sightings.latitude, got %#v", errs)
	}
}

func TestBlank(t *testing.T) {
	cases := map[string]bool{
		"":       true,
		"   ":    true,
		"\t\n":   true,
		"Weasel": false,
		" x ":    false,
	}
	for in, want := range cases {
		if got := Blank(in); got != want {
			t.Fatalf("Blank(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAsErrors_NonValidation(t *testing.T) {
	if _, ok := AsErrors(errors.New("x")); ok {
		t.Fatalf("expected ok=false for plain error")
	}
}
