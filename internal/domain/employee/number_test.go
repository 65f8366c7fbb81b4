package employee

import "testing"

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"123", "00123"},
		{"00123", "00123"},
		{" 123 ", "00123"},
		{"123456", "123456"},
		{"EMP-42", "00042"},
		{"ABC", "00ABC"},
		{"", ""},
		{"   ", ""},
		{"0", "00000"},
	}
	for _, c := range cases {
		if got := NormalizeNumber(c.input); got != c.want {
			t.Errorf("NormalizeNumber(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNormalizeNumberDedupsPaddedForms(t *testing.T) {
	if NormalizeNumber("123") != NormalizeNumber("00123") {
		t.Error("expected \"123\" and \"00123\" to normalize to the same key")
	}
}
