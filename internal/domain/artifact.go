package domain

import (
	"fmt"
	"strings"
)

type ArtifactKind string

const (
	ArtifactMultipleChoice ArtifactKind = "mcq"
	ArtifactShortAnswer    ArtifactKind = "short"
	ArtifactSummary        ArtifactKind = "summary"
)

func ArtifactKinds() []ArtifactKind {
	return []ArtifactKind{ArtifactMultipleChoice, ArtifactShortAnswer, ArtifactSummary}
}

func ParseArtifactKind(raw string) (ArtifactKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mcq", "quiz", "multiple-choice":
		return ArtifactMultipleChoice, nil
	case "short", "short-answer", "short-answers":
		return ArtifactShortAnswer, nil
	case "summary":
		return ArtifactSummary, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownArtifactKind, raw)
	}
}

func (k ArtifactKind) Valid() bool {
	switch k {
	case ArtifactMultipleChoice, ArtifactShortAnswer, ArtifactSummary:
		return true
	default:
		return false
	}
}

func (k ArtifactKind) Label() string {
	switch k {
	case ArtifactMultipleChoice:
		return "5 MCQs"
	case ArtifactShortAnswer:
		return "2 Short Answers"
	case ArtifactSummary:
		return "Summary"
	default:
		return string(k)
	}
}
