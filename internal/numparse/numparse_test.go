package numparse

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1.434,89", "1434.89", true},
		{"1434,89", "1434.89", true},
		{"1434.89", "1434.89", true},
		{"10.044,23", "10044.23", true},
		{"1.044.230,50", "1044230.50", true},
		{"1,434,890", "1434890", true},
		{"R$ 1.434,89", "1434.89", true},
		{"7", "7", true},
		{"0", "0", true},
		{"-12,50", "-12.50", true},
		{"", "0", false},
		{"abc", "0", false},
		{"R$", "0", false},
		{"--", "0", false},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		if ok != tc.ok {
			t.Fatalf("Normalize(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if !got.Equal(NormalizeOrZero(tc.want)) {
			t.Fatalf("Normalize(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"1.434,89", "1434,89", "1434.89", "0.01", "7"} {
		once, ok := Normalize(in)
		if !ok {
			t.Fatalf("Normalize(%q) failed", in)
		}
		twice, ok := Normalize(once.String())
		if !ok {
			t.Fatalf("re-Normalize(%q) failed", once.String())
		}
		if !once.Equal(twice) {
			t.Fatalf("not idempotent: %q -> %s -> %s", in, once, twice)
		}
	}
}
