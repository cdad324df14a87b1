package fs

import (
	"fmt"
	"io"

	_ "gonum.org/v1/plot/vg/vgimg" // png
	_ "gonum.org/v1/plot/vg/vgsvg" // svg

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// ChartCodec renders charts to a single image format. Images are write-only.
type ChartCodec struct {
	Format core.Format
}

// NewChartCodec creates a chart codec for png or svg.
func NewChartCodec(f core.Format) *ChartCodec {
	return &ChartCodec{Format: f}
}

func (c *ChartCodec) Encode(w io.Writer, p core.Payload) error {
	chart, ok := p.(core.Chart)
	if !ok {
		return fmt.Errorf("%w for %s: %s", core.ErrUnsupportedFormat, kindOf(p), c.Format)
	}
	if chart.Figure == nil {
		return fmt.Errorf("%w: chart has no figure", core.ErrUnsupportedType)
	}

	width, height := chart.Size()
	wt, err := chart.Figure.WriterTo(width, height, string(c.Format))
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func (c *ChartCodec) Decode(r io.Reader) (core.Payload, error) {
	return nil, fmt.Errorf("%w: %s images cannot be loaded", core.ErrUnsupportedFormat, c.Format)
}
