package models

import "time"

// QuizOption is an answer choice as served to students. Correctness is known
// only server-side at scoring time and never appears on the wire for an
// unattempted quiz.
type QuizOption struct {
	ID   string `json:"_id"`
	Text string `json:"text"`
}

type QuizQuestion struct {
	ID          string       `json:"_id"`
	Question    string       `json:"question"`
	Options     []QuizOption `json:"options"`
	Explanation string       `json:"explanation,omitempty"`
}

type Quiz struct {
	ID           string         `json:"_id"`
	CourseID     string         `json:"courseId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Questions    []QuizQuestion `json:"questions"`
	PassingScore int            `json:"passingScore"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// QuizAttempt is one scored submission. Answers are ordered by quiz-definition
// question order, empty string for an unanswered slot.
type QuizAttempt struct {
	ID             string    `json:"_id"`
	QuizID         string    `json:"quizId"`
	StudentID      string    `json:"studentId"`
	Answers        []string  `json:"answers"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	Passed         bool      `json:"passed"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

// IsPassing compares a score against a quiz passing threshold. Equality
// passes: score 70 against threshold 70 is a pass.
func IsPassing(score, passingScore int) bool {
	return score >= passingScore
}

// QuizWithAttempt pairs a quiz with the current student's latest attempt, if
// any. The attempt is an explicit optional, never inferred from zero values.
type QuizWithAttempt struct {
	Quiz    Quiz
	Attempt Optional[QuizAttempt]
}
