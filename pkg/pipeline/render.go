package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	errs "github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/render/nodelink"
)

// RenderTree renders report's blocking tree in the given format. The report
// must have been produced with Options.Explain, except for FormatJSON which
// renders the whole report.
func RenderTree(ctx context.Context, report *Report, format string, detailed bool) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return json.MarshalIndent(report, "", "  ")
	}
	if report.Tree == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "report for %s has no blocking tree", report.Name)
	}

	switch format {
	case FormatText:
		return []byte(report.Tree.Format(report.Label)), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(report.Tree, report.Label, nodelink.Options{Detailed: detailed})), nil
	case FormatSVG:
		dot := nodelink.ToDOT(report.Tree, report.Label, nodelink.Options{Detailed: detailed})
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	}
	return nil, fmt.Errorf("unreachable format %q", format)
}
