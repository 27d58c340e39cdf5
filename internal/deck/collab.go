package deck

import "errors"

// ErrUnavailable signals that a collaborator cannot render right now.
// The player shows a placeholder for the affected block and carries on;
// a missing chart is never fatal to the deck.
var ErrUnavailable = errors.New("renderer unavailable")

// ChartRenderer draws a chart spec into terminal cells of the given
// width. The deck passes the spec through untouched; layout and styling
// belong entirely to the collaborator.
type ChartRenderer interface {
	RenderChart(spec ChartSpec, width int) (string, error)
}

// DiagramRenderer turns a textual diagram description into rendered
// terminal output.
type DiagramRenderer interface {
	RenderDiagram(source string, width int) (string, error)
}
