package service

// Score counts exact matches between a submitted answer map and an answer
// key (question id → correct option id). Questions with no entry in answers
// never match; extra answer entries for unknown questions never count. The
// result is independent of the order answers were recorded in.
func Score(answers, answerKey map[string]string) int {
	score := 0
	for questionID, correctOptionID := range answerKey {
		if answers[questionID] == correctOptionID {
			score++
		}
	}
	return score
}

// Progress converts a 0-based question index into a 0-100 completion
// percentage for a total of n questions.
func Progress(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(index+1) / float64(total) * 100
}

// ClampIndex clamps a navigation index into [0, total-1].
func ClampIndex(index, total int) int {
	if index < 0 {
		return 0
	}
	if index > total-1 {
		if total <= 0 {
			return 0
		}
		return total - 1
	}
	return index
}
