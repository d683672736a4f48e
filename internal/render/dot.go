// Package render provides frame sinks and chart export for typewriterx
// engines.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/typewriterx"
)

// ExportDOT generates Graphviz DOT source for the mode chart, highlighting
// the current mode.
func ExportDOT(edges []typewriterx.Edge, current typewriterx.Mode) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Typewriter {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, m := range modes(edges) {
		style := ""
		if m == current {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		shape := ""
		if m == typewriterx.Stopped {
			shape = ` shape=doublecircle`
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s%s];\n", m.String(), m.String(), shape, style)
	}

	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From.String(), e.To.String(), e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type jsonEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// ExportJSON serializes the chart edges to JSON.
func ExportJSON(edges []typewriterx.Edge) ([]byte, error) {
	out := make([]jsonEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, jsonEdge{From: e.From.String(), To: e.To.String(), Label: e.Label})
	}
	return json.MarshalIndent(out, "", "  ")
}

// modes returns every mode named by edges in first-seen order.
func modes(edges []typewriterx.Edge) []typewriterx.Mode {
	seen := make(map[typewriterx.Mode]bool)
	var out []typewriterx.Mode
	add := func(m typewriterx.Mode) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	for _, e := range edges {
		add(e.From)
		add(e.To)
	}
	return out
}
