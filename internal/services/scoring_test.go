package services

import "testing"

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name    string
		results []QuestionResult
		want    float64
	}{
		{
			name:    "empty results score zero",
			results: nil,
			want:    0,
		},
		{
			name: "all correct",
			results: []QuestionResult{
				{QuestionID: 1, IsCorrect: true},
				{QuestionID: 2, IsCorrect: true},
			},
			want: 1,
		},
		{
			name: "half correct",
			results: []QuestionResult{
				{QuestionID: 1, SelectedOption: "Goroutines", Answer: "Goroutines", IsCorrect: true},
				{QuestionID: 2, SelectedOption: "Mutex", Answer: "Channel", IsCorrect: false},
			},
			want: 0.5,
		},
		{
			name: "one of four",
			results: []QuestionResult{
				{QuestionID: 1, IsCorrect: true},
				{QuestionID: 2},
				{QuestionID: 3},
				{QuestionID: 4},
			},
			want: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateScore(tt.results)
			if got != tt.want {
				t.Fatalf("CalculateScore() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Fatalf("score %v outside [0,1]", got)
			}
		})
	}
}
