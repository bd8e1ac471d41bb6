package domain

// MessageKind tags the structured payload of a bot message. Presentation is
// owned by the rendering layer; the state machine never emits markup.
type MessageKind string

const (
	KindWelcome       MessageKind = "welcome"
	KindSmallTalk     MessageKind = "smalltalk"
	KindEmailPrompt   MessageKind = "emailPrompt"
	KindTopicPrompt   MessageKind = "topicPrompt"
	KindInvalidTopic  MessageKind = "invalidTopic"
	KindQuestion      MessageKind = "question"
	KindInvalidAnswer MessageKind = "invalidAnswer"
	KindExit          MessageKind = "exit"
	KindResults       MessageKind = "results"
	KindError         MessageKind = "error"
)

// Message is one structured bot reply.
type Message struct {
	Kind   MessageKind     `json:"kind"`
	Text   string          `json:"text,omitempty"`
	Topics []string        `json:"topics,omitempty"`
	Prompt *QuestionPrompt `json:"prompt,omitempty"`
	Report *Report         `json:"report,omitempty"`
}

// QuestionPrompt carries everything needed to display one question.
type QuestionPrompt struct {
	Topic    string   `json:"topic"`
	Number   int      `json:"number"` // 1-based position within the topic
	Total    int      `json:"total"`
	Question Question `json:"question"`
}

// Report is the finished assessment result.
type Report struct {
	Topic      string        `json:"topic"`
	Email      string        `json:"email,omitempty"`
	Score      int           `json:"score"`
	MaxScore   int           `json:"maxScore"`
	Percentage int           `json:"percentage"`
	Grade      string        `json:"grade"`
	Breakdown  []ReportEntry `json:"breakdown"`
}

// ReportEntry compares the chosen option against the best one per question.
type ReportEntry struct {
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
	Chosen     Option `json:"chosen"`
	Best       Option `json:"best"`
}
