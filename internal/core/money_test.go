package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"120.50", "120.50", true},
		{"120,50", "120.50", true},
		{"1", "1.00", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.50", true},
		{"+3", "3.00", true},
		{"-1", "-1.00", true}, // sign accepted here; rejected by Validate
		{"", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1,2,3", "", false},
		{"12a.50", "", false},
		{".", "", false},
		{"-", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q unexpected error: %v", tc.in, err)
			}
			if FormatAmount(got) != tc.out {
				t.Fatalf("%q expected %s, got %s", tc.in, tc.out, FormatAmount(got))
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseAmountSeparatorEquivalence(t *testing.T) {
	dot, err := ParseAmount("120.50")
	if err != nil {
		t.Fatalf("dot: %v", err)
	}
	comma, err := ParseAmount("120,50")
	if err != nil {
		t.Fatalf("comma: %v", err)
	}
	if !dot.Equal(comma) {
		t.Fatalf("expected %s == %s", dot, comma)
	}
}
