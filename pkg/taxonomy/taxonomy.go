// Package taxonomy splits delimited source taxonomy strings into individual
// terms and classifies which controlled vocabulary each string belongs to.
//
// The BC211 export stuffs three semantic facets into one free-text column,
// distinguishable only by casing convention: all-lowercase strings are "why"
// terms, capitalized single-cased phrases are "who" terms, everything else is
// a "what" term. AIRS-coded columns are classified explicitly. The heuristic
// is applied to the raw unsplit value; there is no other metadata to go on.
package taxonomy

import (
	"strings"
	"unicode"

	"github.com/Ramsey-B/fern/pkg/identity"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Explode splits one source taxonomy value into term records. An explicit
// vocabulary override (operator-supplied) wins over classification; airsCoded
// marks values from the AIRS-coded source column.
func Explode(value string, airsCoded bool, vocabularyOverride string) []models.TaxonomyTerm {
	vocabulary := vocabularyOverride
	if vocabulary == "" {
		if airsCoded {
			vocabulary = models.VocabularyAIRS
		} else {
			vocabulary = Classify(value)
		}
	}

	var names []string
	if vocabulary == models.VocabularyAIRS {
		names = splitAIRS(value)
	} else {
		names = splitTerms(value)
	}

	terms := make([]models.TaxonomyTerm, 0, len(names))
	for _, name := range names {
		terms = append(terms, models.TaxonomyTerm{
			ID:         identity.TaxonomyTerm(name, vocabulary),
			Name:       name,
			Vocabulary: vocabulary,
		})
	}
	return terms
}

// Classify infers the vocabulary of a raw taxonomy value from its casing.
func Classify(value string) string {
	if value == strings.ToLower(value) {
		return models.VocabularyWhy
	}
	if isCapitalizedPhrase(value) {
		return models.VocabularyWho
	}
	return models.VocabularyWhat
}

// isCapitalizedPhrase reports whether the value starts with an uppercase
// letter and every following character is lowercase, e.g. "Veterans".
func isCapitalizedPhrase(value string) bool {
	runes := []rune(value)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	rest := string(runes[1:])
	return rest == strings.ToLower(rest)
}

// splitAIRS splits an AIRS-coded value on semicolons, asterisks and spaces.
func splitAIRS(value string) []string {
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == '*' || r == ' '
	})
	return trimNonEmpty(tokens, false)
}

// splitTerms splits a free-text value on semicolons, asterisks and spaced
// hyphens, then slugs internal spaces and slashes to hyphens. A hyphen inside
// a token ("emergency-housing") is part of the term, not a delimiter.
func splitTerms(value string) []string {
	value = strings.ReplaceAll(value, " - ", ";")
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == '*'
	})
	return trimNonEmpty(tokens, true)
}

func trimNonEmpty(tokens []string, slug bool) []string {
	out := tokens[:0]
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if slug {
			token = strings.ReplaceAll(token, " ", "-")
			token = strings.ReplaceAll(token, "/", "-")
		}
		out = append(out, token)
	}
	return out
}
