package validator

import "testing"

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	v.Check(false, "hour", "must be between 0 and 23")
	v.Check(false, "hour", "second message")
	v.Check(true, "weekday", "never added")

	if v.Valid() {
		t.Fatal("validator must be invalid")
	}
	if got := v.Errors["hour"]; got != "must be between 0 and 23" {
		t.Fatalf("unexpected message %q", got)
	}
	if _, ok := v.Errors["weekday"]; ok {
		t.Fatal("passing check must not add an error")
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("created_at", "created_at", "-created_at") {
		t.Fatal("expected permitted")
	}
	if PermittedValue(5, 0, 1, 2, 3, 4) {
		t.Fatal("5 is not a ride category")
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		v, min, max int
		want        bool
	}{
		{0, 0, 23, true},
		{23, 0, 23, true},
		{24, 0, 23, false},
		{-1, 0, 6, false},
	}
	for _, tt := range tests {
		if got := Between(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Between(%d, %d, %d) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}
