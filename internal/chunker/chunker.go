// Package chunker splits plain text into bounded, semantically coherent
// chunks for embedding and retrieval. It is a pure computation with no I/O.
package chunker

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxChunkSize     = 800
	DefaultMinChunkSize     = 200
	DefaultOverlapSentences = 1

	// mergeOverflowFactor bounds the trailing-chunk merge: coherence is
	// preferred over strict sizing, but only up to MaxChunkSize*1.2.
	mergeOverflowFactor = 1.2
)

// Chunk is a bounded slice of the source text. Chunks are ordered by Index
// starting at 0 and cover the source sentences in order, with intentional
// sentence-level overlap between adjacent chunks.
type Chunk struct {
	Index         int
	Text          string
	SentenceCount int
}

// Options control chunk sizing. Sizes are measured in runes.
type Options struct {
	MaxChunkSize     int
	MinChunkSize     int
	OverlapSentences int
}

// Chunker packs sentences into chunks. Safe for concurrent use.
type Chunker struct {
	opts Options
}

// New creates a Chunker, applying defaults for unset options.
func New(opts Options) *Chunker {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = DefaultMaxChunkSize
	}
	if opts.MinChunkSize <= 0 {
		opts.MinChunkSize = DefaultMinChunkSize
	}
	if opts.MinChunkSize > opts.MaxChunkSize {
		opts.MinChunkSize = opts.MaxChunkSize
	}
	if opts.OverlapSentences < 0 {
		opts.OverlapSentences = 0
	}
	return &Chunker{opts: opts}
}

// Chunk splits text into chunks. It never fails: empty or whitespace-only
// input yields an empty result.
func (c *Chunker) Chunk(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []Chunk
	var cur []string
	curLen := 0 // rune length of cur joined with single spaces
	seeded := 0 // leading sentences of cur carried over as overlap

	// closeChunk emits the current chunk and seeds the next one with the
	// last OverlapSentences sentences. A chunk consisting solely of its
	// overlap seed is never emitted.
	closeChunk := func() {
		if len(cur) == 0 || len(cur) == seeded {
			return
		}
		chunks = append(chunks, Chunk{
			Index:         len(chunks),
			Text:          strings.Join(cur, " "),
			SentenceCount: len(cur),
		})
		n := c.opts.OverlapSentences
		if n > len(cur) {
			n = len(cur)
		}
		seed := make([]string, n)
		copy(seed, cur[len(cur)-n:])
		cur = seed
		seeded = n
		curLen = joinedLen(cur)
	}

	appendSentence := func(s string) {
		sLen := utf8.RuneCountInString(s)
		if curLen > 0 && curLen+1+sLen > c.opts.MaxChunkSize {
			closeChunk()
			// The overlap seed itself may not leave room; drop it rather
			// than emit an overlap-only chunk.
			if curLen > 0 && curLen+1+sLen > c.opts.MaxChunkSize {
				cur = nil
				seeded = 0
				curLen = 0
			}
		}
		if curLen > 0 {
			curLen++
		}
		cur = append(cur, s)
		curLen += sLen
	}

	for _, paragraph := range splitParagraphs(text) {
		for _, sentence := range SplitSentences(paragraph) {
			if utf8.RuneCountInString(sentence) > c.opts.MaxChunkSize {
				for _, piece := range splitLongSentence(sentence, c.opts.MaxChunkSize) {
					appendSentence(piece)
				}
				continue
			}
			appendSentence(sentence)
		}
		// Prefer paragraph-aligned boundaries over purely size-driven ones.
		if curLen >= c.opts.MinChunkSize {
			closeChunk()
		}
	}
	closeChunk()

	return c.mergeTrailing(chunks)
}

// mergeTrailing folds an undersized trailing chunk into its predecessor
// unless the merge would exceed MaxChunkSize*mergeOverflowFactor.
func (c *Chunker) mergeTrailing(chunks []Chunk) []Chunk {
	n := len(chunks)
	if n < 2 {
		return chunks
	}
	last := chunks[n-1]
	if utf8.RuneCountInString(last.Text) >= c.opts.MinChunkSize {
		return chunks
	}
	merged := chunks[n-2].Text + " " + last.Text
	if float64(utf8.RuneCountInString(merged)) > float64(c.opts.MaxChunkSize)*mergeOverflowFactor {
		return chunks
	}
	chunks[n-2].Text = merged
	chunks[n-2].SentenceCount += last.SentenceCount
	return chunks[:n-1]
}

func joinedLen(sentences []string) int {
	if len(sentences) == 0 {
		return 0
	}
	total := len(sentences) - 1
	for _, s := range sentences {
		total += utf8.RuneCountInString(s)
	}
	return total
}
