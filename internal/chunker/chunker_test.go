package chunker

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

// makeSentence builds a sentence of roughly n runes that starts with an
// uppercase word so the scanner sees a boundary before it.
func makeSentence(i, n int) string {
	s := fmt.Sprintf("Sentence %d ", i)
	for utf8.RuneCountInString(s) < n-5 {
		s += "lorem ipsum "
	}
	return strings.TrimSpace(s) + " ends."
}

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})
	if c.opts.MaxChunkSize != DefaultMaxChunkSize {
		t.Errorf("MaxChunkSize = %d, want %d", c.opts.MaxChunkSize, DefaultMaxChunkSize)
	}
	if c.opts.MinChunkSize != DefaultMinChunkSize {
		t.Errorf("MinChunkSize = %d, want %d", c.opts.MinChunkSize, DefaultMinChunkSize)
	}
	if c.opts.OverlapSentences != 0 {
		t.Errorf("OverlapSentences = %d, want 0", c.opts.OverlapSentences)
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c := New(Options{})
	if got := c.Chunk(""); got != nil {
		t.Errorf("Chunk(\"\") = %v, want nil", got)
	}
	if got := c.Chunk("   \n\t  "); got != nil {
		t.Errorf("Chunk(whitespace) = %v, want nil", got)
	}
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	c := New(Options{MaxChunkSize: 800, MinChunkSize: 200, OverlapSentences: 1})
	text := "One short sentence. Another short sentence."
	chunks := c.Chunk(text)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text = %q, want %q", chunks[0].Text, text)
	}
	if chunks[0].SentenceCount != 2 {
		t.Errorf("SentenceCount = %d, want 2", chunks[0].SentenceCount)
	}
}

// Two paragraphs of five ~200-rune sentences with maxChunkSize=800 and one
// sentence of overlap must produce at least two chunks, none above 960
// runes, where each chunk after the first starts with the previous chunk's
// last sentence.
func TestChunk_OverlapAndSizeBounds(t *testing.T) {
	c := New(Options{MaxChunkSize: 800, MinChunkSize: 200, OverlapSentences: 1})

	var paragraphs []string
	idx := 0
	for p := 0; p < 2; p++ {
		var sentences []string
		for s := 0; s < 5; s++ {
			sentences = append(sentences, makeSentence(idx, 200))
			idx++
		}
		paragraphs = append(paragraphs, strings.Join(sentences, " "))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}

	for _, ch := range chunks {
		if n := utf8.RuneCountInString(ch.Text); n > 960 {
			t.Errorf("chunk %d has %d runes, want <= 960", ch.Index, n)
		}
	}

	for i := 0; i+1 < len(chunks); i++ {
		prev := SplitSentences(chunks[i].Text)
		next := SplitSentences(chunks[i+1].Text)
		if len(prev) == 0 || len(next) == 0 {
			t.Fatalf("chunk %d or %d has no sentences", i, i+1)
		}
		if prev[len(prev)-1] != next[0] {
			t.Errorf("chunk %d does not start with the last sentence of chunk %d:\nlast: %q\nfirst: %q",
				i+1, i, prev[len(prev)-1], next[0])
		}
	}
}

func TestChunk_Indexing(t *testing.T) {
	c := New(Options{MaxChunkSize: 120, MinChunkSize: 40, OverlapSentences: 0})
	var sentences []string
	for i := 0; i < 6; i++ {
		sentences = append(sentences, makeSentence(i, 100))
	}
	chunks := c.Chunk(strings.Join(sentences, " "))
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d has Index %d", i, ch.Index)
		}
	}
}

func TestChunk_NoOverlapOnlyChunks(t *testing.T) {
	c := New(Options{MaxChunkSize: 250, MinChunkSize: 50, OverlapSentences: 2})
	var sentences []string
	for i := 0; i < 8; i++ {
		sentences = append(sentences, makeSentence(i, 110))
	}
	chunks := c.Chunk(strings.Join(sentences, " "))
	for _, ch := range chunks {
		if ch.SentenceCount <= 0 {
			t.Errorf("chunk %d has SentenceCount %d", ch.Index, ch.SentenceCount)
		}
	}
	// Every sentence must appear somewhere.
	all := strings.Join(sentences, " ")
	for _, s := range sentences {
		if !strings.Contains(all, s) {
			t.Fatalf("test setup broken: sentence missing")
		}
		found := false
		for _, ch := range chunks {
			if strings.Contains(ch.Text, s) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("sentence %q missing from all chunks", s[:20])
		}
	}
}

func TestChunk_TrailingMerge(t *testing.T) {
	// The final short sentence should be folded into the previous chunk as
	// long as the merge stays within MaxChunkSize*1.2.
	c := New(Options{MaxChunkSize: 300, MinChunkSize: 100, OverlapSentences: 0})
	text := makeSentence(0, 250) + " " + makeSentence(1, 60)
	chunks := c.Chunk(text)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1 after trailing merge", len(chunks))
	}
	if n := utf8.RuneCountInString(chunks[0].Text); float64(n) > 300*1.2 {
		t.Errorf("merged chunk has %d runes, above the 1.2 bound", n)
	}
}

func TestChunk_TrailingMergeRespectsBound(t *testing.T) {
	// Merge would exceed MaxChunkSize*1.2, so the short tail stays separate.
	c := New(Options{MaxChunkSize: 300, MinChunkSize: 100, OverlapSentences: 0})
	text := makeSentence(0, 290) + " " + makeSentence(1, 90)
	chunks := c.Chunk(text)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
}

func TestChunk_LongSentenceFallback(t *testing.T) {
	c := New(Options{MaxChunkSize: 100, MinChunkSize: 20, OverlapSentences: 0})

	t.Run("splits on semicolons", func(t *testing.T) {
		text := strings.Repeat("alpha beta gamma delta epsilon zeta; ", 10) + "tail."
		chunks := c.Chunk(text)
		if len(chunks) < 2 {
			t.Fatalf("got %d chunks, want at least 2", len(chunks))
		}
		for _, ch := range chunks {
			if n := utf8.RuneCountInString(ch.Text); n > 120 {
				t.Errorf("chunk %d has %d runes, want <= 120", ch.Index, n)
			}
		}
	})

	t.Run("hard split without separators", func(t *testing.T) {
		text := strings.Repeat("x", 500) + "."
		chunks := c.Chunk(text)
		if len(chunks) < 4 {
			t.Fatalf("got %d chunks, want at least 4", len(chunks))
		}
		for i, ch := range chunks {
			n := utf8.RuneCountInString(ch.Text)
			if n > 120 && i != len(chunks)-1 {
				t.Errorf("chunk %d has %d runes, want <= 100", i, n)
			}
		}
	})
}
