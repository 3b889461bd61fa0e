// Package readtime estimates how long a piece of text takes to read.
package readtime

import "strings"

// WordsPerMinute is the reading speed the estimate assumes
const WordsPerMinute = 200

// WordCount returns the number of whitespace-delimited tokens in text.
// Markdown syntax is counted as-is.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Estimate returns ceil(WordCount(text) / WordsPerMinute) minutes.
// Empty or whitespace-only text yields 0.
func Estimate(text string) int {
	words := WordCount(text)
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
