package selection

import (
	"maps"

	"github.com/atomicstack/tmux-jump/internal/buffer"
	"github.com/atomicstack/tmux-jump/internal/label"
	"github.com/atomicstack/tmux-jump/internal/layout"
)

// RenderModel is everything a renderer needs to draw the session.
type RenderModel struct {
	// Items is the displayed list in display order.
	Items    []buffer.Item
	Labels   map[buffer.ID]string
	Paths    map[buffer.ID]string
	Width    int
	Selected int
	Mode     Mode
	Input    string
	Preview  buffer.ID
	Active   bool
	Display  layout.Mode
}

// SelectedItem returns the item at Selected.
func (r RenderModel) SelectedItem() (buffer.Item, bool) {
	if r.Selected < 1 || r.Selected > len(r.Items) {
		return buffer.Item{}, false
	}
	return r.Items[r.Selected-1], true
}

// Label returns the label to draw for id.
func (r RenderModel) Label(id buffer.ID) string {
	return label.Display(r.Labels, id)
}

// Path returns the display path for id.
func (r RenderModel) Path(id buffer.ID) string {
	if p, ok := r.Paths[id]; ok {
		return p
	}
	return buffer.Unnamed
}

// RenderModel projects the current state. Outside a session it is empty
// apart from Display.
func (c *Controller) RenderModel() RenderModel {
	model := RenderModel{
		Mode:    c.mode,
		Active:  c.active,
		Display: c.opts.Layout.Mode,
	}
	if !c.active {
		return model
	}
	model.Items = buffer.Clone(c.displayed())
	model.Labels = maps.Clone(c.itemLabels)
	model.Paths = maps.Clone(c.displayPath)
	model.Selected = c.selected
	model.Preview = c.preview
	switch c.mode {
	case ModeTypeahead:
		model.Input = c.typeahead
	case ModeFuzzy:
		model.Input = c.fuzzy
	}
	model.Width = layout.Width(c.opts.Layout, c.rows(), c.prompt())
	return model
}

// Rows converts items to layout rows using the session's labels and paths.
func (r RenderModel) Rows() []layout.Row {
	rows := make([]layout.Row, len(r.Items))
	for i, item := range r.Items {
		rows[i] = layout.Row{
			Label:     r.Label(item.ID),
			Path:      r.Path(item.ID),
			Current:   item.Current,
			Alternate: item.Alternate,
			Modified:  item.Modified,
		}
	}
	return rows
}

// rows covers the whole snapshot so the width does not jump while filtering.
func (c *Controller) rows() []layout.Row {
	all := RenderModel{Items: c.items, Labels: c.itemLabels, Paths: c.displayPath}
	return all.Rows()
}

func (c *Controller) prompt() layout.Prompt {
	return layout.Prompt{
		Title:  c.opts.PromptTitle,
		Input:  c.fuzzy,
		Active: c.mode == ModeFuzzy,
	}
}
