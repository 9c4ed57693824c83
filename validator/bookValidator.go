// Package validator holds the per-entity domain validators the creating
// services consume. Each returns a list of violation messages; an empty
// list means the candidate is acceptable.
package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"libraryledger/model"
)

// capitalizedWord: an upper-case letter followed by lower-case letters.
var capitalizedWord = regexp.MustCompile(`^\p{Lu}\p{Ll}+$`)

type Book interface {
	Validate(candidate model.Book) []string
}

type bookValidator struct{}

func NewBook() Book { return bookValidator{} }

func (bookValidator) Validate(candidate model.Book) []string {
	var violations []string

	title := strings.TrimSpace(candidate.Title)
	if title == "" {
		violations = append(violations, "book title is required")
	} else {
		if utf8.RuneCountInString(title) < 3 {
			violations = append(violations, "title must be at least 3 characters long")
		}
		first, _ := utf8.DecodeRuneInString(title)
		if !unicode.IsUpper(first) {
			violations = append(violations, "title must start with a capital letter")
		}
	}

	author := strings.TrimSpace(candidate.Author)
	if author == "" {
		violations = append(violations, "author name is required")
	} else {
		words := strings.Fields(author)
		if len(words) != 2 {
			violations = append(violations, "author name must consist of two words")
		} else if !capitalizedWord.MatchString(words[0]) || !capitalizedWord.MatchString(words[1]) {
			violations = append(violations, "each word of the author name must start with a capital letter")
		}
	}

	return violations
}
