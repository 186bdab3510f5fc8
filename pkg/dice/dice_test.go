package dice

import (
	"testing"
)

// fixedRoller always returns the same face.
type fixedRoller struct {
	value int
}

func (f *fixedRoller) Roll(_ int) (int, error) { return f.value, nil }
func (f *fixedRoller) RollN(n, _ int) ([]int, error) {
	out := make([]int, n)
	for i := range out {
		out[i] = f.value
	}
	return out, nil
}

func TestModifier(t *testing.T) {
	cases := []struct {
		score    int
		expected int
	}{
		{1, -5},
		{7, -2},
		{8, -1},
		{9, -1},
		{10, 0},
		{11, 0},
		{12, 1},
		{15, 2},
		{20, 5},
		{30, 10},
	}
	for _, tc := range cases {
		if got := Modifier(tc.score); got != tc.expected {
			t.Errorf("Modifier(%d) = %d, expected %d", tc.score, got, tc.expected)
		}
	}
}

func TestFormatModifier(t *testing.T) {
	cases := map[int]string{
		-2: "-2",
		-1: "-1",
		0:  "+0",
		1:  "+1",
		10: "+10",
	}
	for mod, expected := range cases {
		if got := FormatModifier(mod); got != expected {
			t.Errorf("FormatModifier(%d) = %q, expected %q", mod, got, expected)
		}
	}
}

func TestRoll(t *testing.T) {
	r := &fixedRoller{value: 7}

	v, err := Roll(r, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}

	if _, err := Roll(r, 0); err == nil {
		t.Error("expected error for invalid die size")
	}
}

func TestRollDefaultBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		v, err := Roll(Default, 6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < 1 || v > 6 {
			t.Fatalf("d6 roll out of bounds: %d", v)
		}
	}
}

func TestDieName(t *testing.T) {
	if got := DieName(20); got != "d20" {
		t.Errorf("expected d20, got %s", got)
	}
	if got := DieName(100); got != "d%" {
		t.Errorf("expected d%%, got %s", got)
	}
}
