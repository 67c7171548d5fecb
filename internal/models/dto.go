package models

type SubmitTestRequest struct {
	EducationLevel       string   `json:"educationLevel"`
	CGPA                 float64  `json:"cgpa"`
	Major                string   `json:"major"`
	ProgrammingLanguages []string `json:"programmingLanguages"`
	CourseworkExperience string   `json:"courseworkExperience"`
	SkillReflection      string   `json:"skillReflection"`
}

type SubmitTestResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

type SkillReflectionRequest struct {
	UserTestID int `json:"user_test_id"`
}

type QuestionPayload struct {
	ID         int      `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

type GenerateQuestionsResponse struct {
	Questions []QuestionPayload `json:"questions"`
}

type FollowUpSubmission struct {
	QuestionID     int    `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
	UserTestID     int    `json:"user_test_id"`
}

type FollowUpSubmissions struct {
	Responses []FollowUpSubmission `json:"responses"`
}

type JobMatch struct {
	UserTestID           int      `json:"user_test_id"`
	JobIndex             int      `json:"job_index"`
	SimilarityScore      float64  `json:"similarity_score"`
	SimilarityPercentage float64  `json:"similarity_percentage"`
	JobTitle             string   `json:"job_title"`
	JobDescription       string   `json:"job_description"`
	RequiredSkills       []string `json:"required_skills,omitempty"`
	RequiredKnowledge    []string `json:"required_knowledge,omitempty"`
}

// CombinedData in UserProfileMatchResponse is either the aggregated user
// data or a map holding a single "error" key; callers must check for it.
type UserProfileMatchResponse struct {
	ProfileText  string      `json:"profile_text"`
	TopMatches   []JobMatch  `json:"top_matches"`
	CombinedData interface{} `json:"combined_data"`
}

type ErrorData struct {
	Error string `json:"error"`
}
