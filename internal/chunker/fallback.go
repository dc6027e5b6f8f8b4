package chunker

import (
	"strings"
	"unicode/utf8"
)

// fallbackSeparators is the cascade used to split a single sentence that
// exceeds MaxChunkSize, coarsest first.
var fallbackSeparators = []string{"; ", ", ", " "}

type splitTask struct {
	text   string
	sepIdx int
}

// splitLongSentence breaks an oversized sentence into pieces no longer than
// max runes, trying each fallback separator in turn and slicing at fixed
// size as a last resort. The split is an explicit stack walk so that a
// pathological delimiter-free input cannot grow the call stack.
func splitLongSentence(sentence string, max int) []string {
	var out []string
	stack := []splitTask{{text: sentence, sepIdx: 0}}

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if utf8.RuneCountInString(task.text) <= max {
			out = append(out, task.text)
			continue
		}

		if task.sepIdx >= len(fallbackSeparators) {
			runes := []rune(task.text)
			for start := 0; start < len(runes); start += max {
				end := start + max
				if end > len(runes) {
					end = len(runes)
				}
				out = append(out, string(runes[start:end]))
			}
			continue
		}

		parts := strings.SplitAfter(task.text, fallbackSeparators[task.sepIdx])
		if len(parts) == 1 {
			stack = append(stack, splitTask{text: task.text, sepIdx: task.sepIdx + 1})
			continue
		}

		// Push in reverse so pieces come off the stack in source order.
		for i := len(parts) - 1; i >= 0; i-- {
			piece := strings.TrimSpace(parts[i])
			if piece == "" {
				continue
			}
			stack = append(stack, splitTask{text: piece, sepIdx: task.sepIdx})
		}
	}

	return out
}
