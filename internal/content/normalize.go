package content

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
)

// markdownChars are the characters that can start inline markup
const markdownChars = "*_`[]<\\~"

// md only recognises paragraphs, so a leading "-", "1." or "#" in a title
// stays part of the text.
var md = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

// Normalize returns slides with markdown markup removed from display text
func Normalize(slides []models.Slide) []models.Slide {
	out := make([]models.Slide, len(slides))
	for i, s := range slides {
		s.Type = models.SlideType(strings.TrimSpace(string(s.Type)))
		s.Title = PlainText(s.Title)
		s.Text = PlainText(s.Text)
		s.PresenterName = PlainText(s.PresenterName)
		s.ImageQuery = strings.TrimSpace(s.ImageQuery)
		if s.Points != nil {
			points := make([]models.Point, len(s.Points))
			for j, p := range s.Points {
				points[j] = models.Point{
					Text:        PlainText(p.Text),
					Explanation: PlainText(p.Explanation),
				}
			}
			s.Points = points
		}
		out[i] = s
	}
	return out
}

// PlainText renders inline markdown to its text content. Emphasis, code
// spans and links keep their text and lose their markers. Backslash escapes
// are resolved outside code spans.
func PlainText(s string) string {
	if !strings.ContainsAny(s, markdownChars) {
		return strings.TrimSpace(s)
	}

	source := []byte(s)
	doc := md.Parse(text.NewReader(source))

	var b strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				b.Write(util.UnescapePunctuations(node.Segment.Value(source)))
				writeBreak(&b, node)
			}
		case *ast.CodeSpan:
			if entering {
				for c := node.FirstChild(); c != nil; c = c.NextSibling() {
					if t, ok := c.(*ast.Text); ok {
						b.Write(t.Segment.Value(source))
					}
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				b.Write(node.Label(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}

		if !entering && n.Type() == ast.TypeBlock && n.NextSibling() != nil {
			b.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func writeBreak(b *strings.Builder, t *ast.Text) {
	if t.HardLineBreak() {
		b.WriteByte('\n')
	} else if t.SoftLineBreak() {
		b.WriteByte(' ')
	}
}
