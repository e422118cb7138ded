package service

import (
	"math"
	"testing"
)

func TestScoreExactMatch(t *testing.T) {
	key := map[string]string{"q1": "b", "q2": "d"}
	answers := map[string]string{"q1": "b", "q2": "c"}

	if got := Score(answers, key); got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
}

func TestScoreOrderIndependent(t *testing.T) {
	key := map[string]string{"q1": "a", "q2": "b", "q3": "c"}

	// Answers recorded in any order produce the same score.
	a := map[string]string{"q3": "c", "q1": "a", "q2": "b"}
	b := map[string]string{"q1": "a", "q2": "b", "q3": "c"}

	if Score(a, key) != Score(b, key) {
		t.Error("score depends on recording order")
	}
	if got := Score(a, key); got != 3 {
		t.Errorf("score = %d, want 3", got)
	}
}

func TestScoreUnansweredAndUnknown(t *testing.T) {
	key := map[string]string{"q1": "a", "q2": "b"}

	// Unanswered questions score zero.
	if got := Score(map[string]string{}, key); got != 0 {
		t.Errorf("empty answers score = %d, want 0", got)
	}

	// Answers to questions outside the key never count.
	answers := map[string]string{"q1": "a", "q99": "a"}
	if got := Score(answers, key); got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(0, 3); math.Abs(got-33.333333) > 0.001 {
		t.Errorf("progress = %f, want ~33.33", got)
	}
	if got := Progress(2, 3); got != 100 {
		t.Errorf("progress = %f, want 100", got)
	}
	if got := Progress(0, 0); got != 0 {
		t.Errorf("progress with no questions = %f, want 0", got)
	}
}

func TestClampIndexBounds(t *testing.T) {
	cases := []struct{ index, total, want int }{
		{-1, 5, 0},
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 4},
		{99, 5, 4},
		{3, 0, 0},
	}
	for _, tc := range cases {
		if got := ClampIndex(tc.index, tc.total); got != tc.want {
			t.Errorf("ClampIndex(%d, %d) = %d, want %d", tc.index, tc.total, got, tc.want)
		}
	}
}
