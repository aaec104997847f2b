package scoring

import "testing"

func TestRandomScoreRanges(t *testing.T) {
	tests := []struct {
		kind Kind
		min  float64
		max  float64 // exclusive
	}{
		{KindViral, 70, 100},
		{KindEngagement, 60, 100},
		{KindRating, 4.5, 5.0},
		{KindReach, 1000, 11000},
	}

	s := NewRandomSeeded(42)
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				got := s.Score(tt.kind)
				if got < tt.min || got >= tt.max {
					t.Fatalf("Score(%s) = %v, want [%v, %v)", tt.kind, got, tt.min, tt.max)
				}
			}
		})
	}
}

func TestRandomScoreUnknownKind(t *testing.T) {
	s := NewRandomSeeded(1)
	if got := s.Score(Kind("bogus")); got != 0 {
		t.Errorf("Score(bogus) = %v, want 0", got)
	}
}

func TestFixed(t *testing.T) {
	f := Fixed(85)
	if f.Score(KindViral) != 85 || f.Score(KindReach) != 85 {
		t.Error("Fixed should return the same value for every kind")
	}
}
