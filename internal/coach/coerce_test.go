package coach

import "testing"

func TestCoerceCount(t *testing.T) {
	cases := map[string]int{
		"12":    12,
		" 8 ":   8,
		"12abc": 12,
		"":      0,
		"abc":   0,
		"-3":    0,
		"+4":    4,
		"7.9":   7,
		"-":     0,
	}
	for in, want := range cases {
		if got := CoerceCount(in); got != want {
			t.Errorf("CoerceCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestCoerceWeight(t *testing.T) {
	cases := map[string]float64{
		"60":    60,
		"62.5":  62.5,
		"":      0,
		"heavy": 0,
		"-10":   0,
		"80kg":  80,
		"NaN":   0,
		"Inf":   0,
	}
	for in, want := range cases {
		if got := CoerceWeight(in); got != want {
			t.Errorf("CoerceWeight(%q) = %v, want %v", in, got, want)
		}
	}
}
