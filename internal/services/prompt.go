package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildProfilePrompt creates the profile-synthesis prompt. The score is
// explained as the degree to which the user's skill reflection is
// confirmed by their follow-up answers.
func (pb *PromptBuilder) BuildProfilePrompt(combinedDataJSON string) string {
	return fmt.Sprintf(`Analyze the following user information and write a thorough, objective profile. `+
		`Focus on strengths, weaknesses, practical skills, and realistic next steps. `+
		`Interpret 'score' as the degree to which the user's skillReflection is confirmed `+
		`by follow-up test answers (higher = more accurate self-assessment). `+
		`Avoid fluff; keep it evidence-based and specific.

USER DATA:
%s

Return a single descriptive paragraph with bullet-style clauses separated by semicolons.`, combinedDataJSON)
}

// BuildQuestionsPrompt creates the follow-up question-generation prompt.
func (pb *PromptBuilder) BuildQuestionsPrompt(skillReflection string) string {
	return fmt.Sprintf(`You are an assistant that verifies self-reported technical skills.

A user described their skills as follows:
%s

Generate 5 multiple-choice questions that objectively test whether the claims above hold.
Each question must have exactly 4 options and one correct answer taken verbatim from the options.

Return ONLY valid JSON in the following format:
{
  "questions": [
    {
      "question": "<question text>",
      "options": ["<option 1>", "<option 2>", "<option 3>", "<option 4>"],
      "answer": "<the correct option>",
      "difficulty": "<easy|medium|hard>",
      "category": "<short topic tag>"
    }
  ]
}`, skillReflection)
}

// BuildRewritePrompt creates the per-match description cleanup prompt.
func (pb *PromptBuilder) BuildRewritePrompt(jobDescription string) string {
	return fmt.Sprintf(`Extract and rewrite the core content of the following job description. `+
		`Keep the responsibilities, required skills, and qualifications; drop boilerplate, `+
		`legal notices, and company marketing. Write in a professional, neutral tone; avoid buzzwords.

JOB DESCRIPTION:
%s

Return only the cleaned description text.`, jobDescription)
}
