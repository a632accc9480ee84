package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

const DefaultConfidence = "High"

type Message struct {
	Role       Role
	Text       string
	Citation   string
	Confidence string
}

func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// AnswerMessage builds an assistant message. Confidence falls back to
// DefaultConfidence only when a citation is present.
func AnswerMessage(text, citation, confidence string) Message {
	if citation != "" && confidence == "" {
		confidence = DefaultConfidence
	}
	if citation == "" {
		confidence = ""
	}

	return Message{
		Role:       RoleAssistant,
		Text:       text,
		Citation:   citation,
		Confidence: confidence,
	}
}

func (m Message) HasCitation() bool {
	return m.Citation != ""
}
