package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridlock/pkg/heuristic"
)

// Options configures blocking-tree rendering.
type Options struct {
	// Detailed adds each vehicle's cost to its node label.
	// When false, only the vehicle label is shown.
	Detailed bool
}

// Labeler maps a vehicle id to its display name.
type Labeler func(id int) string

// ToDOT converts a blocking tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Front blockers are joined by solid edges, back blockers by dashed ones.
// A revisit points back at the vehicle's first node with a grey edge, so
// cyclic blocking shows up as a cycle in the diagram.
func ToDOT(t *heuristic.Tree, label Labeler, opts Options) string {
	if label == nil {
		label = func(id int) string { return strconv.Itoa(id) }
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if t == nil || t.Root == nil {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=palegreen];\n", nodeID(0), label(0)+"\ngoal")
		buf.WriteString("}\n")
		return buf.String()
	}

	var edges []string
	t.Walk(func(n *heuristic.Node, _ int) {
		if n.Revisited {
			return
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.Vehicle), strings.Join(fmtAttrs(n, label, opts.Detailed), ", "))
		for _, c := range n.Front {
			edges = append(edges, fmtEdge(n.Vehicle, c))
		}
		for _, c := range n.Back {
			edges = append(edges, fmtEdge(n.Vehicle, c))
		}
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(vehicle int) string { return "v" + strconv.Itoa(vehicle) }

func fmtAttrs(n *heuristic.Node, label Labeler, detailed bool) []string {
	text := label(n.Vehicle)
	if detailed {
		text += fmt.Sprintf("\ncost: %d", n.Cost)
	}
	attrs := []string{fmt.Sprintf("label=%q", text)}
	if n.Side == heuristic.SideRoot {
		attrs = append(attrs, "fillcolor=lightcoral")
	}
	return attrs
}

func fmtEdge(from int, to *heuristic.Node) string {
	var attrs []string
	if to.Side == heuristic.SideBack {
		attrs = append(attrs, "style=dashed")
	}
	if to.Revisited {
		attrs = append(attrs, "color=grey", "constraint=false")
	}
	if len(attrs) == 0 {
		return fmt.Sprintf("  %q -> %q;\n", nodeID(from), nodeID(to.Vehicle))
	}
	return fmt.Sprintf("  %q -> %q [%s];\n", nodeID(from), nodeID(to.Vehicle), strings.Join(attrs, ", "))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
