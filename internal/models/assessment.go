package models

type UserTest struct {
	ID                   int     `gorm:"primaryKey;autoIncrement" json:"id"`
	EducationLevel       string  `gorm:"type:text" json:"educationLevel"`
	CGPA                 float64 `gorm:"column:cgpa" json:"cgpa"`
	Major                string  `gorm:"type:text" json:"major"`
	ProgrammingLanguages string  `gorm:"type:text" json:"programmingLanguages"` // comma-joined
	CourseworkExperience string  `gorm:"type:text" json:"courseworkExperience"`
	SkillReflection      string  `gorm:"type:text" json:"skillReflection"`
}

func (UserTest) TableName() string {
	return "user_test"
}

type GeneratedQuestion struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserTestID   int    `gorm:"not null;index" json:"user_test_id"`
	QuestionText string `gorm:"type:text;not null" json:"question_text"`
	Options      string `gorm:"type:text" json:"options"` // JSON-encoded list
	Answer       string `gorm:"type:text" json:"answer"`
	Difficulty   string `gorm:"type:text" json:"difficulty"`
	QuestionType string `gorm:"type:text" json:"question_type"`
}

func (GeneratedQuestion) TableName() string {
	return "generated_questions"
}

type FollowUpAnswer struct {
	ID             int    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserTestID     int    `gorm:"not null;index" json:"user_test_id"`
	QuestionID     int    `gorm:"not null" json:"question_id"`
	SelectedOption string `gorm:"type:text;not null" json:"selected_option"`
}

func (FollowUpAnswer) TableName() string {
	return "follow_up_answers"
}
