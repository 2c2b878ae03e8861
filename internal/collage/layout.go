package collage

import (
	"fmt"
	"image"
)

// Layout is the grid geometry of a collage.
type Layout struct {
	Columns    int `json:"columns"`
	Rows       int `json:"rows"`
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
	Padding    int `json:"padding"`
	Width      int `json:"width"`
	Height     int `json:"height"`

	// Positions holds the top-left corner of each image, in input order.
	Positions []image.Point `json:"positions"`
}

// ComputeLayout places len(sizes) images on a grid of the given column
// count.
//
//	rows   = ceil(n / columns)
//	width  = columns*(maxW+padding) + padding
//	height = rows*(maxH+padding) + padding
//
// Image i goes to column i%columns, row i/columns. The canvas is always
// sized for the full column count, even when there are fewer images than
// columns.
func ComputeLayout(sizes []image.Point, columns, padding int) (*Layout, error) {
	if err := (Spec{Columns: columns, Padding: padding}).Validate(); err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: nothing to lay out", ErrNoValidImages)
	}

	var maxW, maxH int
	for _, s := range sizes {
		maxW = max(maxW, s.X)
		maxH = max(maxH, s.Y)
	}

	rows := (len(sizes) + columns - 1) / columns
	l := &Layout{
		Columns:    columns,
		Rows:       rows,
		CellWidth:  maxW,
		CellHeight: maxH,
		Padding:    padding,
		Width:      columns*(maxW+padding) + padding,
		Height:     rows*(maxH+padding) + padding,
		Positions:  make([]image.Point, len(sizes)),
	}

	for i := range sizes {
		row, col := i/columns, i%columns
		l.Positions[i] = image.Pt(col*(maxW+padding)+padding, row*(maxH+padding)+padding)
	}
	return l, nil
}
