package domain

import "strings"

type Session struct {
	Identity string
}

func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Identity) != ""
}
