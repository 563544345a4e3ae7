package dom

import (
	"strings"

	"backtest-analyzer/internal/interfaces"
)

// FindAll returns every descendant of n (n itself excluded) whose tag equals tag,
// in document order. Nested tables are included, so rows of a table nested inside
// another table are also rows of the outer one.
func FindAll(n interfaces.Node, tag string) []interfaces.Node {
	var out []interfaces.Node
	walk(n, func(el interfaces.Node) {
		if el.Tag() == tag {
			out = append(out, el)
		}
	})
	return out
}

// Elements returns all descendants of n in document order
func Elements(n interfaces.Node) []interfaces.Node {
	var out []interfaces.Node
	walk(n, func(el interfaces.Node) {
		out = append(out, el)
	})
	return out
}

func walk(n interfaces.Node, visit func(interfaces.Node)) {
	if n == nil {
		return
	}
	for _, child := range n.Children() {
		visit(child)
		walk(child, visit)
	}
}

// Tables returns all tables under root
func Tables(root interfaces.Node) []interfaces.Node {
	return FindAll(root, "table")
}

// Rows returns all rows of a table
func Rows(table interfaces.Node) []interfaces.Node {
	return FindAll(table, "tr")
}

// Cells returns the data cells of a row. Report generators are inconsistent
// about header markup, so when a row has no td cells its th cells are used.
func Cells(row interfaces.Node) []interfaces.Node {
	cells := FindAll(row, "td")
	if len(cells) == 0 {
		cells = FindAll(row, "th")
	}
	return cells
}

// CellTexts returns the trimmed text of every cell in the row
func CellTexts(row interfaces.Node) []string {
	cells := Cells(row)
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = strings.TrimSpace(c.Text())
	}
	return texts
}

// ContainsAll reports whether text contains every marker
func ContainsAll(text string, markers ...string) bool {
	for _, m := range markers {
		if !strings.Contains(text, m) {
			return false
		}
	}
	return true
}
