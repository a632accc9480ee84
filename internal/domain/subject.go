package domain

import (
	"fmt"
	"strings"
)

type Subject string

const (
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
	SubjectBiology   Subject = "biology"

	DefaultSubject = SubjectPhysics
)

// Subjects returns every subject in tab order.
func Subjects() []Subject {
	return []Subject{SubjectPhysics, SubjectChemistry, SubjectBiology}
}

func ParseSubject(raw string) (Subject, error) {
	subject := Subject(strings.ToLower(strings.TrimSpace(raw)))
	if !subject.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSubject, raw)
	}

	return subject, nil
}

func (s Subject) Valid() bool {
	switch s {
	case SubjectPhysics, SubjectChemistry, SubjectBiology:
		return true
	default:
		return false
	}
}

func (s Subject) Label() string {
	switch s {
	case SubjectPhysics:
		return "Physics"
	case SubjectChemistry:
		return "Chemistry"
	case SubjectBiology:
		return "Biology"
	default:
		return string(s)
	}
}
