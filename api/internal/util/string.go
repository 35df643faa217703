package util

import (
	"strings"
	"unicode"
)

const fence = "```"

// StripCodeFences removes a markdown code fence around s.
// The opening line (with an optional language tag such as "json") and the
// closing marker are each removed only when present.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, fence) {
		rest := strings.TrimLeft(s[len(fence):], "`")
		line, tail, hasNL := strings.Cut(rest, "\n")
		switch {
		case isFenceTag(line) && hasNL:
			s = tail
		case isFenceTag(line):
			s = ""
		case hasNL && !startsPayload(line):
			// annotated opening line such as "```json:out"
			s = tail
		default:
			// "```json {...}" on one line: drop the tag, keep the payload
			s = strings.TrimLeftFunc(strings.TrimSpace(rest), unicode.IsLetter)
		}
	}

	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, fence) {
		s = strings.TrimRight(s, "`")
	}
	return strings.TrimSpace(s)
}

const tagChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-+."

// isFenceTag reports whether the remainder of a fence-opening line is empty
// or a bare language tag.
func isFenceTag(line string) bool {
	line = strings.TrimSpace(line)
	return strings.Trim(line, tagChars) == ""
}

// startsPayload reports whether a fence-opening line already carries the
// start of the JSON body, e.g. "```json {".
func startsPayload(line string) bool {
	return strings.ContainsAny(line, "{[")
}

// Excerpt returns at most n runes of s.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
