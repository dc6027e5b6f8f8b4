package chunker

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two simple sentences",
			text: "Hello world. This is a test.",
			want: []string{"Hello world.", "This is a test."},
		},
		{
			name: "question and exclamation",
			text: "Is it working? It is!",
			want: []string{"Is it working?", "It is!"},
		},
		{
			name: "abbreviation does not split",
			text: "Dr. Smith arrived late. He apologized.",
			want: []string{"Dr. Smith arrived late.", "He apologized."},
		},
		{
			name: "e.g. does not split",
			text: "Use a fruit, e.g. an apple. Then eat it.",
			want: []string{"Use a fruit, e.g. an apple.", "Then eat it."},
		},
		{
			name: "decimal number does not split",
			text: "Pi is roughly 3.14 in short form. Everyone knows that.",
			want: []string{"Pi is roughly 3.14 in short form.", "Everyone knows that."},
		},
		{
			name: "version string does not split",
			text: "We shipped v1.2beta yesterday.",
			want: []string{"We shipped v1.2beta yesterday."},
		},
		{
			name: "ellipsis before uppercase splits",
			text: "He paused… Then he spoke.",
			want: []string{"He paused…", "Then he spoke."},
		},
		{
			name: "run of marks consumed together",
			text: "Really?! Yes.",
			want: []string{"Really?!", "Yes."},
		},
		{
			name: "opening quote starts new sentence",
			text: `She nodded. "Fine," she said.`,
			want: []string{"She nodded.", `"Fine," she said.`},
		},
		{
			name: "newline then lowercase splits",
			text: "First line ends.\nsecond line continues here.",
			want: []string{"First line ends.", "second line continues here."},
		},
		{
			name: "no terminal punctuation keeps tail",
			text: "A heading without punctuation",
			want: []string{"A heading without punctuation"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph.\n \t\nThird."
	got := splitParagraphs(text)
	want := []string{"First paragraph.", "Second paragraph.", "Third."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitParagraphs() = %q, want %q", got, want)
	}
}
