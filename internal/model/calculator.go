package model

// BinEstimate holds the result of an area-based bin count calculation.
type BinEstimate struct {
	TotalItemArea   int     `json:"total_item_area"`   // Sum of item areas, quantities included
	BinArea         int     `json:"bin_area"`          // Area of one bin
	BinsNeededExact float64 `json:"bins_needed_exact"` // Fractional number of bins
	BinsNeededMin   int     `json:"bins_needed_min"`   // Ceiling of the exact count; a lower bound for any packing
	Oversized       int     `json:"oversized"`         // Items (with quantity) that fit in neither orientation
}

// EstimateBins computes a lower bound on how many bins of the given size are
// needed for items. Oversized and degenerate items are excluded from the area
// total; oversized ones are counted separately.
func EstimateBins(items []Item, binWidth, binHeight int) BinEstimate {
	bin := Rectangle{Width: binWidth, Height: binHeight}
	est := BinEstimate{BinArea: bin.Area()}

	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		r := it.Rect()
		if r.Degenerate() {
			continue
		}
		fits := (r.Width <= binWidth && r.Height <= binHeight) ||
			(r.Height <= binWidth && r.Width <= binHeight)
		if !fits {
			est.Oversized += it.Quantity
			continue
		}
		est.TotalItemArea += r.Area() * it.Quantity
	}

	if est.BinArea == 0 {
		return est
	}

	est.BinsNeededExact = float64(est.TotalItemArea) / float64(est.BinArea)
	est.BinsNeededMin = est.TotalItemArea / est.BinArea
	if est.TotalItemArea%est.BinArea != 0 {
		est.BinsNeededMin++
	}
	return est
}
