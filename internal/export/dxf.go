package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/binpack2d/internal/model"
)

// binGap is the horizontal spacing between bins in the drawing.
const binGap = 10.0

// ExportDXF draws every used bin side by side, left to right in bin order.
// Bin outlines go on the layer "BINS", items on "ITEMS" and their labels on
// "LABELS". Coordinates are packing units with y pointing up.
func ExportDXF(path string, result model.Result) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{"BINS", color.White},
		{"ITEMS", color.Cyan},
		{"LABELS", color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	originX := 0.0
	for _, br := range result.Bins {
		if err := drawBin(d, br, originX); err != nil {
			return err
		}
		originX += float64(br.Bin.Width) + binGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

func drawBin(d *drawing.Drawing, br model.BinResult, originX float64) error {
	if err := d.ChangeLayer("BINS"); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	if err := drawRect(d, originX, 0, float64(br.Bin.Width), float64(br.Bin.Height)); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("Bin %d %s", br.BinID+1, br.Bin.Label), originX, float64(br.Bin.Height)+2, 0, 4); err != nil {
		return fmt.Errorf("failed to write bin label: %w", err)
	}

	for _, p := range br.Placements {
		x, y := originX+float64(p.X), float64(p.Y)
		w, h := float64(p.PlacedWidth()), float64(p.PlacedHeight())

		if err := d.ChangeLayer("ITEMS"); err != nil {
			return fmt.Errorf("failed to select layer: %w", err)
		}
		if err := drawRect(d, x, y, w, h); err != nil {
			return err
		}

		if err := d.ChangeLayer("LABELS"); err != nil {
			return fmt.Errorf("failed to select layer: %w", err)
		}
		height := min(w, h) / 4
		if _, err := d.Text(p.Item.Label, x+height/2, y+height/2, 0, height); err != nil {
			return fmt.Errorf("failed to write item label: %w", err)
		}
	}
	return nil
}

// drawRect draws an axis-aligned rectangle as four LINE entities.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i, c := range corners {
		n := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, n[0], n[1], 0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}
