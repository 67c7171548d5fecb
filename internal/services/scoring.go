package services

// QuestionResult records one graded follow-up answer.
type QuestionResult struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	Answer         string `json:"answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// CalculateScore aggregates graded follow-up answers into a consistency
// score in [0,1]: the fraction of answers matching the recorded correct
// option. An empty result list scores 0.
func CalculateScore(results []QuestionResult) float64 {
	if len(results) == 0 {
		return 0
	}

	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}

	return float64(correct) / float64(len(results))
}
