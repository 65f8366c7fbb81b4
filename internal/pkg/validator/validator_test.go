package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric("01234") {
		t.Error("IsNumeric(\"01234\") = false, want true")
	}
	for _, s := range []string{"", "12a", "1.5", "-3"} {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	got, ok := IsValidPeriod("2026-08")
	if !ok {
		t.Fatal("IsValidPeriod(\"2026-08\") = false, want true")
	}
	if got.Year() != 2026 || got.Month() != 8 || got.Day() != 1 {
		t.Errorf("IsValidPeriod(\"2026-08\") = %v, want first of August 2026", got)
	}
	for _, s := range []string{"2026-13", "2026", "08-2026", "abc"} {
		if _, ok := IsValidPeriod(s); ok {
			t.Errorf("IsValidPeriod(%q) = true, want false", s)
		}
	}
}
