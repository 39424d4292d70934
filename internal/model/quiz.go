package model

// QuizAnswer records one submitted choice. Produced in question order, never mutated.
type QuizAnswer struct {
	QuestionID int    `json:"question_id"`
	Choice     string `json:"choice"`
}

// TypeCount is the vote tally for one personality type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// QuizResult is derived from a completed answer list; it is never stored.
type QuizResult struct {
	PrimaryType        string      `json:"primary_type"`
	Counts             []TypeCount `json:"counts"`
	Description        string      `json:"description"`
	RecommendedMajors  []string    `json:"recommended_majors"`
	RecommendedCareers []string    `json:"recommended_careers"`
	// MajorDetails holds the records of recommended majors present in the data set.
	MajorDetails []Major `json:"major_details,omitempty"`
}

// SubmitAnswerRequest is the payload for answering the current quiz question.
type SubmitAnswerRequest struct {
	Choice string `json:"choice" binding:"required,oneof=A B C D"`
}
