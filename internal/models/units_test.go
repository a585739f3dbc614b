// ABOUTME: Tests for fixed-point Weight and Distance parse/format rules.
// ABOUTME: Covers rounding, rejection of invalid input, and overflow bounds.
package models

import "testing"

func TestParseWeightValid(t *testing.T) {
	cases := []struct {
		in   string
		want Weight
	}{
		{"82.5", 8250},
		{"82.35", 8235},
		{"0.01", 1},
		{"100", 10000},
		{"655.35", 65535},
		{"82.345", 8235}, // rounds half away from zero
		{"82.344", 8234},
	}
	for _, c := range cases {
		got, ok := ParseWeight(c.in)
		if !ok {
			t.Errorf("ParseWeight(%q) rejected, want %d", c.in, c.want)
			continue
		}
		if got != c.want {
			t.Errorf("ParseWeight(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseWeightInvalid(t *testing.T) {
	for _, in := range []string{"", "0", "-1", "655.36", "700", "0.004", "NaN", "+Inf", "-Inf", "abc"} {
		if got, ok := ParseWeight(in); ok {
			t.Errorf("ParseWeight(%q) = %d, want rejection", in, got)
		}
	}
}

func TestParseWeightMaxBoundary(t *testing.T) {
	got, ok := ParseWeight("655.35")
	if !ok || got != 65535 {
		t.Fatalf("ParseWeight(655.35) = %d, %v; want 65535, true", got, ok)
	}
	if _, ok := ParseWeight("655.36"); ok {
		t.Fatal("ParseWeight(655.36) accepted, want rejection")
	}
}

func TestWeightFormatRoundTrip(t *testing.T) {
	// format(parse(x)) reproduces x to two decimal places.
	for _, in := range []string{"82.5", "82.35", "100", "0.01", "655.35", "7.07"} {
		w, ok := ParseWeight(in)
		if !ok {
			t.Fatalf("ParseWeight(%q) rejected", in)
		}
		if got := w.Format(); got != in {
			t.Errorf("Format(Parse(%q)) = %q", in, got)
		}
	}
}

func TestWeightFormatStripsZeros(t *testing.T) {
	cases := []struct {
		w    Weight
		want string
	}{
		{8200, "82"},
		{8250, "82.5"},
		{8235, "82.35"},
		{1, "0.01"},
	}
	for _, c := range cases {
		if got := c.w.Format(); got != c.want {
			t.Errorf("Weight(%d).Format() = %q, want %q", c.w, got, c.want)
		}
	}
}

func TestDistanceStringUsesMetresUnderOneKilometre(t *testing.T) {
	cases := []struct {
		d    Distance
		want string
	}{
		{85, "850 m"},
		{99, "990 m"},
		{100, "1 km"},
		{520, "5.2 km"},
		{523, "5.23 km"},
	}
	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("Distance(%d).String() = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestParseDistanceBounds(t *testing.T) {
	if _, ok := ParseDistance("0"); ok {
		t.Error("ParseDistance(0) accepted")
	}
	if _, ok := ParseDistance("-3"); ok {
		t.Error("ParseDistance(-3) accepted")
	}
	got, ok := ParseDistance("655.35")
	if !ok || got != 65535 {
		t.Errorf("ParseDistance(655.35) = %d, %v", got, ok)
	}
	if _, ok := ParseDistance("655.36"); ok {
		t.Error("ParseDistance(655.36) accepted, want rejection")
	}
}
