// Package display decides how a set of rows is presented: as a dense table
// on wide viewports or as a stack of cards on mobile ones.
package display

import "fmt"

// Layout constants for the table mode.
const (
	RowHeight       = 54
	MaxTableHeight  = 600
	WideColumnCount = 8
	WideScrollX     = 1800
	NarrowScrollX   = 1200
)

// Mode is the rendering variant chosen for a data set.
type Mode int

const (
	// ModeTable renders a table with a sticky header and scroll bounds.
	ModeTable Mode = iota
	// ModeCards renders one card per row.
	ModeCards
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeCards {
		return "cards"
	}
	return "table"
}

// Column describes one displayed field of a row.
type Column struct {
	Key   string
	Title string
}

// Row is an arbitrary record passed through to either rendering mode.
type Row = map[string]any

// Props are the properties a table would accept. Pointer fields are caller
// overrides; nil means "use the computed default".
type Props struct {
	Columns []Column
	Rows    []Row
	RowKey  string
	Sticky  *bool
	ScrollX *int
	ScrollY *int
}

// Layout is the resolved presentation of Props.
type Layout struct {
	Mode    Mode
	Props   Props
	Sticky  bool
	ScrollX int
	ScrollY int
}

// ScrollX returns the horizontal scroll width for a column count.
func ScrollX(columns int) int {
	if columns > WideColumnCount {
		return WideScrollX
	}
	return NarrowScrollX
}

// ScrollY returns the vertical scroll bound for a row count.
func ScrollY(rows int) int {
	return min(rows*RowHeight, MaxTableHeight)
}

// Resolve chooses the presentation for props. On mobile the props are passed
// through unchanged to the card variant and no scroll values are computed.
// Otherwise the computed table defaults apply, then caller overrides.
func Resolve(props Props, isMobile bool) Layout {
	if isMobile {
		return Layout{Mode: ModeCards, Props: props}
	}

	l := Layout{
		Mode:    ModeTable,
		Props:   props,
		Sticky:  true,
		ScrollX: ScrollX(len(props.Columns)),
		ScrollY: ScrollY(len(props.Rows)),
	}
	if props.Sticky != nil {
		l.Sticky = *props.Sticky
	}
	if props.ScrollX != nil {
		l.ScrollX = *props.ScrollX
	}
	if props.ScrollY != nil {
		l.ScrollY = *props.ScrollY
	}
	return l
}

// ColumnsFromKeys builds columns whose titles equal their keys.
func ColumnsFromKeys(keys []string) []Column {
	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k, Title: k}
	}
	return cols
}

// FormatValue renders a cell value for display.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// Key returns the identity of row i: the RowKey field when set, else the index.
func (p Props) Key(i int) string {
	if p.RowKey != "" {
		if v, ok := p.Rows[i][p.RowKey]; ok && v != nil {
			return FormatValue(v)
		}
	}
	return fmt.Sprintf("%d", i)
}
