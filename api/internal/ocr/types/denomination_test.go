package types

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestBackfillAddsMissingLabels(t *testing.T) {
	got := Backfill(map[string]any{"500": 3, "100": 1})
	if len(got) != len(Denominations) {
		t.Fatalf("len = %d, want %d", len(got), len(Denominations))
	}
	for _, d := range Denominations {
		want := any(0)
		switch d {
		case "500":
			want = 3
		case "100":
			want = 1
		}
		if got[d] != want {
			t.Errorf("%s = %v, want %v", d, got[d], want)
		}
	}
}

func TestBackfillIdempotent(t *testing.T) {
	once := Backfill(map[string]any{"10000": 2})
	twice := Backfill(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second backfill changed result: %v -> %v", once, twice)
	}
}

func TestBackfillPassesValuesThrough(t *testing.T) {
	got := Backfill(map[string]any{"5": "many", "1": json.Number("4"), "2000": 1})
	if got["5"] != "many" {
		t.Errorf("5 = %v", got["5"])
	}
	if got["1"] != json.Number("4") {
		t.Errorf("1 = %v", got["1"])
	}
	if _, ok := got["2000"]; ok {
		t.Error("unknown label kept")
	}
}

func TestBackfillNil(t *testing.T) {
	got := Backfill(nil)
	for _, d := range Denominations {
		if got[d] != 0 {
			t.Errorf("%s = %v, want 0", d, got[d])
		}
	}
}

func TestTotal(t *testing.T) {
	c := DenominationCount{
		"10000": json.Number("2"),
		"5000":  1,
		"1000":  float64(3),
		"500":   "n/a",
		"100":   json.Number("1.0"),
		"50":    0,
		"10":    nil,
		"5":     int64(2),
		"1":     json.Number("7"),
	}
	// 20000 + 5000 + 3000 + 100 + 10 + 7
	if got := c.Total(); got != 28117 {
		t.Fatalf("Total = %d, want 28117", got)
	}
}

func TestAnalysisErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	if e := NewResponseDecodeError(cause, "abc"); !e.IsDecodeError() || e.Excerpt != "abc" {
		t.Fatalf("unexpected %+v", e)
	}
	for _, e := range []*AnalysisError{NewMissingCredentialError(), NewImageDecodeError(cause), NewProviderError(cause)} {
		if e.IsDecodeError() {
			t.Errorf("%s reported as decode error", e.Kind)
		}
	}
	if !errors.Is(NewProviderError(cause), cause) {
		t.Error("provider error does not unwrap to cause")
	}
	if NewMissingCredentialError().Error() != MissingCredentialMessage {
		t.Error("missing credential message changed")
	}
}
