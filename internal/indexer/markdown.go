package indexer

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownFlattener strips markdown structure down to plain text so the
// sentence chunker sees prose instead of markup. Headings and paragraphs
// become blank-line separated blocks, which the chunker treats as
// paragraph boundaries.
type markdownFlattener struct {
	parser goldmark.Markdown
}

func newMarkdownFlattener() *markdownFlattener {
	return &markdownFlattener{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Flatten parses markdown and returns the plain text content.
func (f *markdownFlattener) Flatten(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	reader := text.NewReader(content)
	doc := f.parser.Parser().Parse(reader)

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			breakBlock(&b)
			return ast.WalkContinue, nil

		case *ast.Text:
			segment := node.Segment
			b.Write(segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteString(" ")
			}
			return ast.WalkContinue, nil

		case *ast.String:
			b.Write(node.Value)
			return ast.WalkContinue, nil

		case *ast.CodeBlock:
			breakBlock(&b)
			writeLines(&b, node, content)
			return ast.WalkContinue, nil

		case *ast.FencedCodeBlock:
			breakBlock(&b)
			writeLines(&b, node, content)
			return ast.WalkContinue, nil

		default:
			// Table rows from the table extension become their own lines so
			// cell text does not run together across rows.
			kindName := n.Kind().String()
			if strings.Contains(kindName, "TableRow") || strings.Contains(kindName, "TableHeader") {
				rowText := extractRowText(n, content)
				if rowText != "" {
					if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
						b.WriteString("\n")
					}
					b.WriteString(rowText)
				}
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		}
	})

	return strings.TrimSpace(b.String())
}

// breakBlock inserts a paragraph break before a new block element.
func breakBlock(b *strings.Builder) {
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n\n") {
		b.WriteString("\n\n")
	}
}

func writeLines(b *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(content))
	}
}

// extractRowText joins table cell text with pipe separators.
func extractRowText(row ast.Node, content []byte) string {
	var rowBuilder strings.Builder
	cellCount := 0

	_ = ast.Walk(row, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if strings.Contains(node.Kind().String(), "TableCell") {
			cellText := extractNodeText(node, content)
			if cellCount > 0 {
				rowBuilder.WriteString(" | ")
			}
			rowBuilder.WriteString(cellText)
			cellCount++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return rowBuilder.String()
}

// extractNodeText collects the plain text of a node and its children.
func extractNodeText(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			segment := v.Segment
			textBuilder.Write(segment.Value(content))
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// isMarkdownFile reports whether the filename looks like markdown.
func isMarkdownFile(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
