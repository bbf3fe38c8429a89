package service

// Mark values for one letter of an evaluated guess
const (
	MarkCorrect = "correct"
	MarkPresent = "present"
	MarkAbsent  = "absent"
)

// LetterMark is the evaluation of one guessed letter
type LetterMark struct {
	Letter string `json:"letter"`
	Mark   string `json:"mark"`
}

// EvaluateGuess colors a guess against the answer. Both strings must be the
// same length and uppercase. Exact matches are marked first, then remaining
// answer letters satisfy "present" marks left to right, so a letter guessed
// more times than it appears is marked absent for the excess.
func EvaluateGuess(guess, answer string) []LetterMark {
	marks := make([]LetterMark, len(guess))
	remaining := make(map[byte]int)

	for i := 0; i < len(guess); i++ {
		marks[i] = LetterMark{Letter: string(guess[i])}
		if guess[i] == answer[i] {
			marks[i].Mark = MarkCorrect
		} else {
			remaining[answer[i]]++
		}
	}

	for i := 0; i < len(guess); i++ {
		if marks[i].Mark == MarkCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			marks[i].Mark = MarkPresent
			remaining[guess[i]]--
		} else {
			marks[i].Mark = MarkAbsent
		}
	}
	return marks
}
