package validator

import (
	"strings"

	"libraryledger/model"
)

type Member interface {
	Validate(candidate model.Member) []string
}

type memberValidator struct{}

func NewMember() Member { return memberValidator{} }

func (memberValidator) Validate(candidate model.Member) []string {
	var violations []string
	if strings.TrimSpace(candidate.Name) == "" {
		violations = append(violations, "member name is required")
	}
	return violations
}
