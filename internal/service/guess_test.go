package service

import "testing"

func marksOf(marks []LetterMark) []string {
	out := make([]string, len(marks))
	for i, m := range marks {
		out[i] = m.Mark
	}
	return out
}

func TestEvaluateGuess(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		answer string
		want   []string
	}{
		{
			name:   "all correct",
			guess:  "HOUSE",
			answer: "HOUSE",
			want:   []string{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect},
		},
		{
			name:   "all absent",
			guess:  "CAT",
			answer: "DIM",
			want:   []string{MarkAbsent, MarkAbsent, MarkAbsent},
		},
		{
			name:   "present letters",
			guess:  "OUSHE",
			answer: "HOUSE",
			want:   []string{MarkPresent, MarkPresent, MarkPresent, MarkPresent, MarkCorrect},
		},
		{
			name:   "duplicate guessed once in answer",
			guess:  "SPEED",
			answer: "ERASE",
			want:   []string{MarkPresent, MarkAbsent, MarkPresent, MarkPresent, MarkAbsent},
		},
		{
			name:   "duplicate consumed by exact match",
			guess:  "LLAMA",
			answer: "LABEL",
			want:   []string{MarkCorrect, MarkPresent, MarkPresent, MarkAbsent, MarkAbsent},
		},
		{
			name:   "excess duplicates absent",
			guess:  "EEVEE",
			answer: "THEME",
			want:   []string{MarkPresent, MarkAbsent, MarkAbsent, MarkAbsent, MarkCorrect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marksOf(EvaluateGuess(tt.guess, tt.answer))
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d = %s, want %s (guess %s vs %s)",
						i, got[i], tt.want[i], tt.guess, tt.answer)
				}
			}
		})
	}
}

func TestEvaluateGuessKeepsLetters(t *testing.T) {
	marks := EvaluateGuess("CAT", "DOG")
	letters := ""
	for _, m := range marks {
		letters += m.Letter
	}
	if letters != "CAT" {
		t.Errorf("letters = %s, want CAT", letters)
	}
}
