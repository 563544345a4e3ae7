package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"backtest-analyzer/internal/interfaces"
)

// selectionNode adapts a single-node goquery selection to interfaces.Node
type selectionNode struct {
	sel *goquery.Selection
}

var _ interfaces.Node = selectionNode{}

func (n selectionNode) Tag() string {
	return strings.ToLower(goquery.NodeName(n.sel))
}

func (n selectionNode) Children() []interfaces.Node {
	kids := n.sel.Children()
	out := make([]interfaces.Node, 0, kids.Length())
	kids.Each(func(_ int, s *goquery.Selection) {
		out = append(out, selectionNode{sel: s})
	})
	return out
}

func (n selectionNode) Text() string {
	return n.sel.Text()
}

// FromDocument exposes a goquery document as the analyzer's tree
func FromDocument(doc *goquery.Document) interfaces.Node {
	return selectionNode{sel: doc.Selection}
}

// Parse reads UTF-8 HTML and returns the root of its tree
func Parse(r io.Reader) (interfaces.Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return FromDocument(doc), nil
}

// ParseString is Parse for in-memory markup
func ParseString(html string) (interfaces.Node, error) {
	return Parse(strings.NewReader(html))
}
