package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	chunks := Split("A short document.", DefaultChunkSize, DefaultChunkOverlap)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short document.", chunks[0])
}

func TestSplit_EmptyText(t *testing.T) {
	assert.Nil(t, Split("", DefaultChunkSize, DefaultChunkOverlap))
	assert.Nil(t, Split("   \n\n  ", DefaultChunkSize, DefaultChunkOverlap))
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	para1 := strings.Repeat("alpha ", 20)  // ~120 bytes
	para2 := strings.Repeat("bravo ", 20)
	para3 := strings.Repeat("charlie ", 20)
	text := para1 + "\n\n" + para2 + "\n\n" + para3

	chunks := Split(text, 150, 0)
	require.GreaterOrEqual(t, len(chunks), 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 150)
		// Paragraphs were not cut mid-word
		assert.NotContains(t, c, "alphabravo")
	}
}

func TestSplit_ChunksRespectSizeLimit(t *testing.T) {
	words := strings.Repeat("industry partnership manufacturing ", 200)
	chunks := Split(words, 300, 50)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 300)
	}
}

func TestSplit_SizeLimitHoldsWhenPartsNearChunkSize(t *testing.T) {
	// Words almost as long as the chunk leave no room for the carried
	// overlap tail; the tail is dropped instead of merging over the limit.
	chunks := Split("aaaaaaaa bbbbbbbb cccccccc", 10, 3)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 10)
	}

	// Same shape at the default sizes: paragraphs just under the chunk size.
	paras := make([]string, 4)
	for i := range paras {
		paras[i] = strings.Repeat(string(rune('a'+i)), 900)
	}
	chunks = Split(strings.Join(paras, "\n\n"), DefaultChunkSize, DefaultChunkOverlap)
	require.Len(t, chunks, 4)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), DefaultChunkSize)
	}
}

func TestSplit_OverlapCarriesContext(t *testing.T) {
	words := strings.Repeat("word ", 300)
	chunks := Split(words, 200, 50)
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with the tail of its predecessor
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-10:]
		assert.Contains(t, chunks[i][:60], strings.TrimSpace(prevTail))
	}
}

func TestSplit_NoSeparatorsHardCut(t *testing.T) {
	text := strings.Repeat("x", 2500)
	chunks := Split(text, 1000, 200)
	require.NotEmpty(t, chunks)
	assert.Equal(t, 1000, len(chunks[0]))
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 1000)
	}

	// Every byte of the input is covered
	joined := chunks[0]
	for i := 1; i < len(chunks); i++ {
		joined += chunks[i][200:]
	}
	assert.Equal(t, text, joined)
}

func TestSplit_DefaultsForBadArguments(t *testing.T) {
	text := strings.Repeat("sentence with words ", 100)
	chunks := Split(text, 0, -5)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), DefaultChunkSize)
	}
}
