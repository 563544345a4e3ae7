// Package settings reads the strategy tester settings block (expert, symbol,
// period, inputs, ...) that precedes the results in a backtest report.
package settings

import (
	"strings"

	"backtest-analyzer/internal/dom"
	"backtest-analyzer/internal/interfaces"
	"backtest-analyzer/internal/types"
)

const (
	sectionStart = "Settings"
	sectionEnd   = "Results"
)

// labels are searched in element text when a report has no Settings block.
// wholeRest keeps everything after the label instead of the first word.
var labels = []struct {
	key       string
	marker    string
	wholeRest bool
}{
	{key: "Symbol", marker: "Symbol:"},
	{key: "Period", marker: "Period:"},
	{key: "Model", marker: "Model:"},
	{key: "Initial deposit", marker: "Initial deposit:", wholeRest: true},
	{key: "Spread", marker: "Spread:"},
}

// Extract returns the report settings in the order they appear
func Extract(root interfaces.Node) []types.Setting {
	if found := fromSettingsBlock(root); len(found) > 0 {
		return found
	}
	return fromLabels(root)
}

// orderedSettings keeps first-seen key order while allowing overwrites and appends
type orderedSettings struct {
	keys   []string
	values map[string]string
}

func newOrderedSettings() *orderedSettings {
	return &orderedSettings{values: make(map[string]string)}
}

func (s *orderedSettings) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *orderedSettings) appendLine(key, value string) {
	s.values[key] += "\n" + value
}

func (s *orderedSettings) list() []types.Setting {
	out := make([]types.Setting, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, types.Setting{Key: k, Value: s.values[k]})
	}
	return out
}

// fromSettingsBlock reads two-column rows between a "Settings" row and a "Results" row.
// A row with an empty key continues the previous value on a new line (multi-line Inputs).
func fromSettingsBlock(root interfaces.Node) []types.Setting {
	found := newOrderedSettings()

	for _, table := range dom.Tables(root) {
		inSection := false
		current := ""

		for _, row := range dom.Rows(table) {
			cells := dom.FindAll(row, "td")
			if len(cells) == 0 {
				continue
			}
			first := cells[0].Text()
			if strings.Contains(first, sectionStart) {
				inSection = true
				continue
			}
			if !inSection {
				continue
			}
			if strings.Contains(first, sectionEnd) {
				break
			}
			if len(cells) < 2 {
				continue
			}

			key := strings.TrimRight(strings.TrimSpace(first), ":")
			value := strings.TrimSpace(cells[1].Text())
			switch {
			case key == "" && current != "":
				found.appendLine(current, value)
			case key != "":
				found.set(key, value)
				current = key
			}
		}
	}

	return found.list()
}

// fromLabels scans every element for "Label: value" text. Elements are visited
// parent first, so the innermost element with a value wins.
func fromLabels(root interfaces.Node) []types.Setting {
	found := newOrderedSettings()

	for _, el := range dom.Elements(root) {
		text := el.Text()
		for _, l := range labels {
			idx := strings.Index(text, l.marker)
			if idx < 0 {
				continue
			}
			rest := text[idx+len(l.marker):]
			value := strings.TrimSpace(rest)
			if !l.wholeRest {
				value = firstWord(rest)
			}
			if value != "" {
				found.set(l.key, value)
			}
			break
		}
	}

	return found.list()
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
