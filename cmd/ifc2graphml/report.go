package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-ifcgraph/pkg/convert"
	"github.com/dd0wney/cluso-ifcgraph/pkg/extract"
	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// renderReport prints the outcome of a batch. Without a terminal it prints
// one line per file.
func renderReport(w io.Writer, r *convert.Report, styled bool) {
	if !styled {
		for _, res := range r.Results {
			if res.OK() {
				fmt.Fprintf(w, "Converted %s -> %s (%d nodes, %d edges)\n", res.Input, res.Output, res.Nodes, res.Edges)
			} else {
				fmt.Fprintf(w, "Error processing %s: %v\n", res.Input, res.Err)
			}
		}
		fmt.Fprintf(w, "%d of %d files converted\n", r.Converted(), len(r.Results))
		return
	}

	t := newTable("FILE", "STATUS", "NODES", "EDGES", "PRUNED", "TIME")
	for _, res := range r.Results {
		status := successStyle.Render("ok")
		if !res.OK() {
			status = errorStyle.Render(string(convert.KindOf(res.Err)))
		}
		t.Row(res.Input, status,
			strconv.Itoa(res.Nodes), strconv.Itoa(res.Edges),
			strconv.Itoa(res.Stats.Sanitize.Pruned),
			res.Duration.Round(time.Millisecond).String())
	}

	nodes, edges := r.Totals()
	fmt.Fprintln(w, titleStyle.Render("ifc2graphml run "+r.RunID))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d of %d files converted, %d nodes, %d edges in %s\n",
		r.Converted(), len(r.Results), nodes, edges, r.Duration.Round(time.Millisecond))

	for _, res := range r.Failed() {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error processing %s: %v", res.Input, res.Err)))
	}
}

// renderInspect prints node counts by category and edge counts by relation
// for one GraphML file
func renderInspect(w io.Writer, path string, g *graph.Graph, styled bool) {
	nodes, edges := extract.Census(g)

	rows := make([][]string, 0, len(nodes)+len(edges))
	for _, c := range sortedKeys(nodes) {
		rows = append(rows, []string{"node", c, strconv.Itoa(nodes[c])})
	}
	relations := make(map[string]int, len(edges))
	for rel, n := range edges {
		relations[string(rel)] = n
	}
	for _, rel := range sortedKeys(relations) {
		rows = append(rows, []string{"edge", rel, strconv.Itoa(relations[rel])})
	}

	stats := g.Statistics()
	if !styled {
		fmt.Fprintf(w, "%s: %d nodes, %d edges\n", path, stats.NodeCount, stats.EdgeCount)
		for _, row := range rows {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", row[0], row[1], row[2])
		}
		return
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d nodes, %d edges)", path, stats.NodeCount, stats.EdgeCount)))
	fmt.Fprintln(w, newTable("KIND", "NAME", "COUNT").Rows(rows...).Render())
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
