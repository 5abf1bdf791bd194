package models

// QuizFileExtension is appended to a quiz title to build its file name.
const QuizFileExtension = ".txt"

// Quiz represents a plain-text quiz identified by its title
type Quiz struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateQuizRequest represents a request body for quiz creation
type CreateQuizRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
