package text

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIntoChunksEmpty(t *testing.T) {
	assert.Empty(t, SplitIntoChunks(""))
	assert.Empty(t, SplitIntoChunks("  \n\t "))
}

func TestSplitIntoChunksShortInput(t *testing.T) {
	chunks := SplitIntoChunks("  A short paragraph. Nothing to split here.  ")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph. Nothing to split here.", chunks[0])
}

func TestSplitIntoChunksForcedCut(t *testing.T) {
	// 1050 runes with no sentence boundary anywhere: the first chunk is a
	// hard cut at exactly 1000, the second starts 100 back and covers the
	// remainder.
	in := strings.Repeat("x", 1050)
	chunks := SplitIntoChunks(in)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 1000)
	assert.Equal(t, in[900:], chunks[1])
	assert.Len(t, chunks[1], 150)
}

func TestSplitIntoChunksSentenceBoundary(t *testing.T) {
	// A boundary sits shortly before the cap; the cut should land there
	// instead of mid-sentence.
	first := strings.Repeat("a", 948) + ". "
	second := strings.Repeat("b", 400)
	chunks := SplitIntoChunks(first + second)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 948)+".", chunks[0])
	assert.True(t, strings.HasSuffix(chunks[1], second))
}

func TestSplitIntoChunksCoverage(t *testing.T) {
	// Every rune of the input must appear in some chunk, in order: each
	// chunk starts at or before the previous chunk's end. Numbered
	// sentences keep every chunk unique so positions are unambiguous.
	var b strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, "Sentence number %d talks about retrieval. ", i)
	}
	trimmed := strings.TrimSpace(b.String())
	chunks := SplitIntoChunks(b.String())
	require.NotEmpty(t, chunks)

	pos := 0 // rune offset of the next uncovered rune
	for _, c := range chunks {
		idx := runeIndex(trimmed, c)
		require.GreaterOrEqual(t, idx, 0, "chunk must occur in the input")
		assert.LessOrEqual(t, idx, pos, "no gap between consecutive chunks")
		if end := idx + len([]rune(c)); end > pos {
			pos = end
		}
	}
	assert.Equal(t, len([]rune(trimmed)), pos, "chunks must cover the whole input")
}

func TestSplitIntoChunksLengthBound(t *testing.T) {
	in := strings.Repeat("Sentence one is here. ", 300)
	for _, c := range SplitIntoChunks(in) {
		assert.LessOrEqual(t, len([]rune(c)), maxChunkSize)
	}
}

// runeIndex returns the rune offset of the first occurrence of sub in s,
// or -1.
func runeIndex(s, sub string) int {
	byteIdx := strings.Index(s, sub)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(s[:byteIdx]))
}
