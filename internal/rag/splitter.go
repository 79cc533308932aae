// Package rag implements the retrieval-augmented partnership analysis
// pipeline: corpus loading, chunking, embedding, retrieval, and scoring.
package rag

import "strings"

const (
	// DefaultChunkSize is the target chunk length in bytes.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the overlap carried between adjacent chunks.
	DefaultChunkOverlap = 200
)

// separators are tried in order; the first one present in the text is used
// to split, and longer pieces recurse with the remaining separators.
var separators = []string{"\n\n", "\n", " ", ""}

// Split breaks text into overlapping chunks of at most chunkSize bytes,
// preferring paragraph then line then word boundaries.
func Split(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
	}
	return splitRecursive(text, separators, chunkSize, overlap)
}

func splitRecursive(text string, seps []string, size, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	sep, rest := pickSeparator(text, seps)
	if sep == "" {
		return hardCut(text, size, overlap)
	}

	parts := strings.Split(text, sep)
	var chunks []string
	var current string

	flush := func() {
		if strings.TrimSpace(current) != "" {
			chunks = append(chunks, current)
		}
		// Carry the tail of the finished chunk into the next one.
		switch {
		case overlap <= 0:
			current = ""
		case len(current) > overlap:
			current = current[len(current)-overlap:]
		}
	}

	for _, part := range parts {
		if len(part) > size {
			// A single oversized piece splits again at a finer boundary.
			flush()
			chunks = append(chunks, splitRecursive(part, rest, size, overlap)...)
			current = ""
			continue
		}

		candidate := part
		if current != "" {
			candidate = current + sep + part
		}
		if len(candidate) > size {
			flush()
			// The carried tail may leave no room for the part; drop the
			// overlap rather than emit an oversized chunk.
			if current != "" && len(current)+len(sep)+len(part) <= size {
				current = current + sep + part
			} else {
				current = part
			}
			continue
		}
		current = candidate
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// pickSeparator returns the first separator present in the text and the
// finer-grained separators after it.
func pickSeparator(text string, seps []string) (string, []string) {
	for i, sep := range seps {
		if sep == "" {
			return "", nil
		}
		if strings.Contains(text, sep) {
			return sep, seps[i+1:]
		}
	}
	return "", nil
}

// hardCut slices text at fixed byte offsets with overlap, used when no
// separator is available.
func hardCut(text string, size, overlap int) []string {
	var chunks []string
	step := size - overlap
	if step <= 0 {
		step = size
	}
	for start := 0; start < len(text); start += step {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}
	return chunks
}
