package token

import (
	"iter"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Terms runs the keyword pipeline used by the local baselines:
// split on non-alphanumerics, lower-case, drop English stop words, stem.
func Terms(text string) []string {
	var terms []string
	for t := range Stem(FilterStopWords(Lower(Split(text)))) {
		terms = append(terms, t)
	}
	return terms
}

// TermFrequencies counts the analyzed terms of text.
func TermFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, t := range Terms(text) {
		tf[t]++
	}
	return tf
}

func Split(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		}) {
			if !yield(w) {
				return
			}
		}
	}
}

func Lower(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := range seq {
			if !yield(strings.ToLower(t)) {
				return
			}
		}
	}
}

func FilterStopWords(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := range seq {
			if snowballeng.IsStopWord(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func Stem(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := range seq {
			if !yield(snowballeng.Stem(t, false)) {
				return
			}
		}
	}
}
