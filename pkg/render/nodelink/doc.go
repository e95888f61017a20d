// Package nodelink renders blocking trees as node-link diagrams.
//
// # Overview
//
// Each vehicle reached by [heuristic.Evaluator.Explain] becomes a box and
// each blocking relation an arrow from the obstructed vehicle to its
// blocker. The target is highlighted; back-side blockers use dashed edges
// and revisits grey edges that point at the vehicle's first appearance.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(tree, labels, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
