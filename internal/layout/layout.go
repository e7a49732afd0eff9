// Package layout computes the minimum width needed to draw the item list
// and filter prompt for a display mode.
package layout

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Mode selects which element list and stick glyphs are used.
type Mode int

const (
	ModeNormal Mode = iota
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	default:
		return "normal"
	}
}

// ParseMode accepts "normal" and "list".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return ModeNormal, nil
	case "list":
		return ModeList, nil
	default:
		return ModeNormal, fmt.Errorf("unknown display mode %q", s)
	}
}

// Element is one column of a rendered row.
type Element string

const (
	ElementStick    Element = "stick"
	ElementLabel    Element = "label"
	ElementFilename Element = "filename"
)

// ParseElements validates a configured element list.
func ParseElements(names []string) ([]Element, error) {
	out := make([]Element, 0, len(names))
	for _, name := range names {
		switch e := Element(strings.ToLower(strings.TrimSpace(name))); e {
		case ElementStick, ElementLabel, ElementFilename:
			out = append(out, e)
		default:
			return nil, fmt.Errorf("unknown display element %q", name)
		}
	}
	return out, nil
}

// Sticks are the glyphs drawn in the stick column. Modified is appended to
// whichever of the other three applies.
type Sticks struct {
	Current   string
	Alternate string
	Modified  string
	Inactive  string
}

// Options is the active display configuration.
type Options struct {
	Mode        Mode
	Normal      []Element
	List        []Element
	NormalStick Sticks
	ListStick   Sticks
	Space       bool
}

// DefaultOptions mirrors the stock config file.
func DefaultOptions() Options {
	return Options{
		Mode:   ModeNormal,
		Normal: []Element{ElementStick, ElementLabel, ElementFilename},
		List:   []Element{ElementLabel, ElementStick, ElementFilename},
		NormalStick: Sticks{
			Current:   "▌",
			Alternate: "▖",
			Modified:  "+",
			Inactive:  " ",
		},
		ListStick: Sticks{
			Current:   "[cur]",
			Alternate: "[alt]",
			Modified:  "[+]",
			Inactive:  "",
		},
		Space: true,
	}
}

// Elements returns the element list of the active mode.
func (o Options) Elements() []Element {
	if o.Mode == ModeList {
		return o.List
	}
	return o.Normal
}

// Separator returns the string drawn between adjacent elements.
func (o Options) Separator() string {
	if o.Space {
		return " "
	}
	return ""
}

func (o Options) sticks() Sticks {
	if o.Mode == ModeList {
		return o.ListStick
	}
	return o.NormalStick
}

// Row is the per-item data the width depends on.
type Row struct {
	Label     string
	Path      string
	Current   bool
	Alternate bool
	Modified  bool
}

// Stick returns the stick glyph for row in the active mode.
func (o Options) Stick(row Row) string {
	s := o.sticks()
	var glyph string
	switch {
	case row.Current:
		glyph = s.Current
	case row.Alternate:
		glyph = s.Alternate
	default:
		glyph = s.Inactive
	}
	if row.Modified {
		glyph += s.Modified
	}
	return glyph
}

// Columns returns the text of each enabled element of row, in order.
func (o Options) Columns(row Row) []string {
	elements := o.Elements()
	cols := make([]string, 0, len(elements))
	for _, e := range elements {
		switch e {
		case ElementStick:
			cols = append(cols, o.Stick(row))
		case ElementLabel:
			cols = append(cols, row.Label)
		case ElementFilename:
			cols = append(cols, row.Path)
		}
	}
	return cols
}

// RowWidth is the cell width of row drawn with o.
func RowWidth(o Options, row Row) int {
	cols := o.Columns(row)
	width := 0
	for _, c := range cols {
		width += runewidth.StringWidth(c)
	}
	if len(cols) > 1 {
		width += (len(cols) - 1) * runewidth.StringWidth(o.Separator())
	}
	return width
}

// Prompt describes the filter prompt line.
type Prompt struct {
	Title  string
	Input  string
	Active bool
}

// PromptPadding is the space reserved after the prompt input: one cell more
// than the widest label.
func PromptPadding(rows []Row) int {
	widest := 1
	for _, r := range rows {
		widest = max(widest, runewidth.StringWidth(r.Label))
	}
	return widest + 1
}

// PromptWidth is the width of an active prompt, or 0 when inactive.
func PromptWidth(p Prompt, rows []Row) int {
	if !p.Active {
		return 0
	}
	return runewidth.StringWidth(p.Title) + runewidth.StringWidth(p.Input) + PromptPadding(rows)
}

// Width returns the larger of the widest row and the active prompt.
func Width(o Options, rows []Row, p Prompt) int {
	width := 0
	for _, r := range rows {
		width = max(width, RowWidth(o, r))
	}
	return max(width, PromptWidth(p, rows))
}
