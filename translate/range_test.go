package translate

import "testing"

func TestRangeScore(t *testing.T) {
	ten := i64(10)
	twenty := i64(20)

	cases := []struct {
		name string
		r    Range
		v    int64
		want int
	}{
		{"wildcard", Range{}, 5, 1},
		{"max only, within", Range{Max: ten}, 5, 2},
		{"max only, exceeds", Range{Max: ten}, 15, 0},
		{"min only, within", Range{Min: ten}, 15, 2},
		{"min only, below", Range{Min: ten}, 5, 0},
		{"closed, within", Range{Min: ten, Max: twenty}, 15, 3},
		{"closed, below", Range{Min: ten, Max: twenty}, 5, 0},
		{"closed, above", Range{Min: ten, Max: twenty}, 25, 0},
		{"closed, boundary low", Range{Min: ten, Max: twenty}, 10, 3},
		{"closed, boundary high", Range{Min: ten, Max: twenty}, 20, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.r.score(c.v)
			if got != c.want {
				t.Errorf("score(%d) = %d, want %d", c.v, got, c.want)
			}
			if (got > 0) != (c.want > 0) {
				t.Errorf("score>0 membership mismatch for %d", c.v)
			}
		})
	}
}

func TestNewRangeRejectsInvertedBounds(t *testing.T) {
	if _, err := newRange(i64(10), i64(5)); err == nil {
		t.Fatal("expected error for min > max")
	}
}

func TestScoreValueRangeInput(t *testing.T) {
	r, err := newRange(i64(0), i64(100))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.scoreValue(NewRange(10, 50)); got != 3 {
		t.Errorf("fully-covered range should score 3, got %d", got)
	}
	if got := r.scoreValue(NewRange(-5, 50)); got != 0 {
		t.Errorf("partially-out-of-bounds range should reject (score 0), got %d", got)
	}
}
