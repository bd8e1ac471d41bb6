package domain

import "errors"

var (
	// ErrMessageRequired is returned when a step needs user input and got none.
	ErrMessageRequired = errors.New("message is required")
	// ErrTopicRequired is returned when the questions step runs without a selected topic.
	ErrTopicRequired = errors.New("topic is required")
	// ErrInvalidStep indicates a corrupted or tampered client state.
	ErrInvalidStep = errors.New("invalid step")
	// ErrNoQuestions indicates a topic with no configured questions (data defect).
	ErrNoQuestions = errors.New("no questions found for this topic")
	// ErrNoPendingQuestion indicates every question already carries an answer
	// while the conversation still claims to be in the questions step.
	ErrNoPendingQuestion = errors.New("no unanswered question remains")
	// ErrTopicNotFound indicates the requested catalog topic does not exist.
	ErrTopicNotFound = errors.New("topic not found")
)
