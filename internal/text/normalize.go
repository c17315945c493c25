// Package text holds the pure text-preparation functions of the indexing
// pipeline: normalization and chunking. Everything here is total — any
// string in, a string (or slice) out, no errors.
package text

import (
	"regexp"
	"strings"
)

var (
	// blockComment uses a shortest-match scan. Comment delimiters inside
	// string literals are stripped too; known limitation, kept on purpose.
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	whitespace   = regexp.MustCompile(`\s+`)
	imageRef     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRef      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	decoration   = regexp.MustCompile("[#*_~`]")
)

// NormalizeCode strips block and line comments from source code and
// collapses all whitespace runs to a single space.
func NormalizeCode(content string) string {
	out := blockComment.ReplaceAllString(content, "")
	out = lineComment.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// NormalizeDocument collapses whitespace, drops image references, keeps
// only the text of markdown links and removes markdown decoration
// characters.
func NormalizeDocument(content string) string {
	out := whitespace.ReplaceAllString(content, " ")
	out = imageRef.ReplaceAllString(out, "")
	out = linkRef.ReplaceAllString(out, "$1")
	out = decoration.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
