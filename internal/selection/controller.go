// Package selection drives one modal pick over the host's items: browsing
// with arrow keys, typing a label, or fuzzy-filtering display paths.
package selection

import (
	"slices"
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-jump/internal/buffer"
	"github.com/atomicstack/tmux-jump/internal/label"
	"github.com/atomicstack/tmux-jump/internal/layout"
	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/paths"
	"github.com/atomicstack/tmux-jump/internal/rank"
)

// Mode is the active state of a session.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeTypeahead
	ModeFuzzy
)

func (m Mode) String() string {
	switch m {
	case ModeTypeahead:
		return "typeahead"
	case ModeFuzzy:
		return "fuzzy"
	default:
		return "browse"
	}
}

// Direction is the argument to Move.
type Direction int

const (
	Up Direction = iota
	Down
)

// DefaultPromptTitle prefixes the fuzzy input.
const DefaultPromptTitle = "> "

// Options configures a Controller.
type Options struct {
	Layout      layout.Options
	Keys        Keys
	Cutoff      int
	PromptTitle string
}

// DefaultOptions returns the stock display, keys and cutoff.
func DefaultOptions() Options {
	return Options{
		Layout:      layout.DefaultOptions(),
		Keys:        DefaultKeys(),
		Cutoff:      rank.DefaultCutoff,
		PromptTitle: DefaultPromptTitle,
	}
}

// Controller owns the state of a selection session. It is not safe for
// concurrent use; the caller feeds it one key at a time.
type Controller struct {
	host   Host
	opts   Options
	labels label.Cache

	items       []buffer.Item
	itemLabels  map[buffer.ID]string
	displayPath map[buffer.ID]string

	active     bool
	generation int
	action     Action
	mode       Mode

	typeahead string
	fuzzy     string
	matches   []int

	// selected is 1-based into the displayed list, 0 when unset.
	selected       int
	browseSelected int
	arrowed        bool

	preview    buffer.ID
	restoreID  buffer.ID
	hasRestore bool

	lastSelected buffer.ID
	hasLast      bool
	lastErr      error
}

// New returns an inactive controller for host.
func New(host Host, opts Options) *Controller {
	c := &Controller{host: host}
	c.SetOptions(opts)
	return c
}

// SetOptions replaces display, key and ranking options. An active session
// keeps its state.
func (c *Controller) SetOptions(opts Options) {
	opts.Keys = opts.Keys.Merge(DefaultKeys())
	if opts.Cutoff <= 0 {
		opts.Cutoff = rank.DefaultCutoff
	}
	c.opts = opts
	if c.active && c.mode == ModeFuzzy {
		c.rerank()
	}
}

// Options returns the options in effect.
func (c *Controller) Options() Options { return c.opts }

// Active reports whether a session is open.
func (c *Controller) Active() bool { return c.active }

// Mode returns the current mode. It is ModeBrowse outside a session.
func (c *Controller) Mode() Mode { return c.mode }

// LastSelected returns the id of the most recently confirmed item.
func (c *Controller) LastSelected() (buffer.ID, bool) { return c.lastSelected, c.hasLast }

// LastError returns the error from the most recent failed host action, or
// nil once a later action succeeds or a new session starts.
func (c *Controller) LastError() error { return c.lastErr }

// RestorePoint returns the host's current item as captured by Enter.
func (c *Controller) RestorePoint() (buffer.ID, bool) { return c.restoreID, c.hasRestore }

// Enter opens a session. Any open session is replaced.
func (c *Controller) Enter(action Action) {
	c.generation++
	c.active = true
	c.action = action
	c.mode = ModeBrowse
	c.typeahead = ""
	c.fuzzy = ""
	c.matches = nil
	c.preview = ""
	c.arrowed = false
	c.browseSelected = 0
	c.lastErr = nil
	c.restoreID, c.hasRestore = c.host.CurrentID()
	c.load(c.host.Snapshot())

	c.selected = 0
	if c.hasRestore {
		if idx := buffer.IndexOf(c.items, c.restoreID); idx >= 0 {
			c.selected = idx + 1
		}
	}
	events.Session.Enter(action.String(), len(c.items), string(c.restoreID))
}

// InvalidateLabels forces the next label computation to start afresh.
func (c *Controller) InvalidateLabels() {
	c.labels.Invalidate()
}

// Refresh re-reads the host snapshot, keeping the selected item selected
// when it is still present. A change of membership invalidates labels, and a
// typeahead prefix left with fewer than two matches falls back to browsing.
func (c *Controller) Refresh() {
	if !c.active {
		return
	}
	selectedID, hasSelected := c.selectedID()
	browseID, hasBrowse := c.browseSelectedID()

	next := c.host.Snapshot()
	if !slices.Equal(buffer.IDs(next), buffer.IDs(c.items)) {
		c.labels.Invalidate()
	}
	c.load(next)

	if c.mode == ModeFuzzy {
		c.rerank()
		if idx := buffer.IndexOf(c.items, browseID); hasBrowse && idx >= 0 {
			c.browseSelected = idx + 1
		} else {
			c.browseSelected = 0
		}
	}

	if c.mode == ModeTypeahead && len(c.labelMatches(c.typeahead)) < 2 {
		c.mode = ModeBrowse
		c.typeahead = ""
	}

	display := c.displayed()
	c.selected = 0
	if hasSelected {
		if idx := buffer.IndexOf(display, selectedID); idx >= 0 {
			c.selected = idx + 1
		}
	}
	if c.mode == ModeFuzzy && c.selected == 0 && len(display) > 0 {
		c.selected = 1
	}
	if c.mode == ModeBrowse && c.selected == 0 {
		c.arrowed = false
	}
	if c.mode == ModeFuzzy {
		c.updatePreview()
	}
}

// HandleKey feeds one Bubble Tea key string through the state machine and
// reports whether it was consumed.
func (c *Controller) HandleKey(key string) bool {
	if !c.active {
		return false
	}
	keys := c.opts.Keys
	switch {
	case bound(keys.Cancel, key):
		return c.Cancel()
	case bound(keys.Confirm, key):
		return c.Confirm()
	case bound(keys.Up, key):
		return c.Move(Up)
	case bound(keys.Down, key):
		return c.Move(Down)
	case bound(keys.Backspace, key):
		if c.mode == ModeFuzzy {
			return c.FuzzyBackspace()
		}
		return c.typeaheadBackspace()
	}

	if c.mode == ModeFuzzy {
		if printable(key) {
			return c.FuzzyInput(key)
		}
		return false
	}
	if bound(keys.Fuzzy, key) {
		return c.EnterFuzzy()
	}
	if c.mode == ModeBrowse && c.arrowed {
		return false
	}
	if label.IsWordKey(key) {
		return c.TypeLabel(key)
	}
	if printable(key) {
		c.exit(true, events.SessionReasonStrayKey)
		return true
	}
	return false
}

// TypeLabel extends the label prefix with key. No match cancels the
// session, a single match confirms it.
func (c *Controller) TypeLabel(key string) bool {
	if !c.active || c.mode == ModeFuzzy || (c.mode == ModeBrowse && c.arrowed) {
		return false
	}
	input := c.typeahead + strings.ToLower(key)
	found := c.labelMatches(input)
	events.Session.Typeahead(input, len(found))

	switch len(found) {
	case 0:
		c.exit(true, events.SessionReasonNoMatch)
	case 1:
		c.confirmItem(found[0])
	default:
		c.mode = ModeTypeahead
		c.typeahead = input
		c.selected = 0
	}
	return true
}

// EnterFuzzy switches from browsing or typeahead to the fuzzy filter.
func (c *Controller) EnterFuzzy() bool {
	if !c.active || c.mode == ModeFuzzy {
		return false
	}
	if c.mode == ModeBrowse {
		c.browseSelected = c.selected
	}
	c.mode = ModeFuzzy
	c.typeahead = ""
	c.fuzzy = ""
	c.rerank()
	c.selected = 0
	if len(c.displayed()) > 0 {
		c.selected = 1
	}
	c.updatePreview()
	events.Session.Fuzzy(c.fuzzy, len(c.matches))
	return true
}

// FuzzyInput appends text to the fuzzy query.
func (c *Controller) FuzzyInput(text string) bool {
	if !c.active || c.mode != ModeFuzzy || text == "" {
		return false
	}
	c.fuzzy += text
	c.afterFuzzyEdit()
	return true
}

// FuzzyBackspace removes the last rune of the fuzzy query.
func (c *Controller) FuzzyBackspace() bool {
	if !c.active || c.mode != ModeFuzzy || c.fuzzy == "" {
		return false
	}
	runes := []rune(c.fuzzy)
	c.fuzzy = string(runes[:len(runes)-1])
	c.afterFuzzyEdit()
	return true
}

func (c *Controller) afterFuzzyEdit() {
	c.rerank()
	c.selected = 0
	if len(c.displayed()) > 0 {
		c.selected = 1
	}
	c.updatePreview()
	events.Session.Fuzzy(c.fuzzy, len(c.displayed()))
}

func (c *Controller) typeaheadBackspace() bool {
	if !c.active || c.mode != ModeTypeahead {
		return false
	}
	runes := []rune(c.typeahead)
	c.typeahead = string(runes[:len(runes)-1])
	if c.typeahead == "" {
		c.mode = ModeBrowse
	}
	return true
}

// Move steps the selection circularly through the displayed items. Without
// a selection it starts from the host's current item, or lands on the first
// (down) or last (up) item.
func (c *Controller) Move(dir Direction) bool {
	if !c.active || c.mode == ModeTypeahead {
		return false
	}
	display := c.displayed()
	n := len(display)
	if n == 0 {
		return false
	}

	if c.selected == 0 {
		if current, ok := c.host.CurrentID(); ok {
			if idx := buffer.IndexOf(display, current); idx >= 0 {
				c.selected = step(idx+1, n, dir)
			}
		}
		if c.selected == 0 {
			if dir == Down {
				c.selected = 1
			} else {
				c.selected = n
			}
		}
	} else {
		c.selected = step(c.selected, n, dir)
	}

	if c.mode == ModeBrowse {
		c.arrowed = true
	} else {
		c.updatePreview()
	}
	events.Session.Move(c.mode.String(), c.selected)
	return true
}

func step(pos, n int, dir Direction) int {
	if dir == Down {
		return pos%n + 1
	}
	return (pos-2+n)%n + 1
}

// Confirm runs the session action on the selected item. It is a no-op
// without a selection.
func (c *Controller) Confirm() bool {
	if !c.active {
		return false
	}
	var item buffer.Item
	switch c.mode {
	case ModeTypeahead:
		found := c.labelMatches(c.typeahead)
		if len(found) != 1 {
			return false
		}
		item = found[0]
	default:
		display := c.displayed()
		if c.selected < 1 || c.selected > len(display) {
			return false
		}
		item = display[c.selected-1]
	}
	c.confirmItem(item)
	return true
}

func (c *Controller) confirmItem(item buffer.Item) {
	events.Session.Confirm(c.action.String(), string(item.ID))
	var err error
	switch c.action.Kind {
	case ActionOpen:
		err = c.host.Activate(item.ID)
	case ActionClose:
		err = c.host.Delete(item.ID)
	case ActionCustom:
		c.lastErr = nil
		c.lastSelected, c.hasLast = item.ID, true
		if c.action.custom != nil {
			c.action.custom(buffer.Clone([]buffer.Item{item})[0], c.leaveFunc())
		}
		return
	}
	if err != nil {
		c.lastErr = err
		events.Session.HostError(c.action.String(), string(item.ID), err)
		return
	}
	c.lastErr = nil
	c.lastSelected, c.hasLast = item.ID, true
	c.exit(false, events.SessionReasonConfirmed)
}

func (c *Controller) leaveFunc() LeaveFunc {
	gen := c.generation
	return func() {
		if c.active && c.generation == gen {
			c.exit(false, events.SessionReasonLeave)
		}
	}
}

// Cancel backs out one level: fuzzy or typeahead back to browsing, then
// clearing the selection, then ending the session with restore.
func (c *Controller) Cancel() bool {
	if !c.active {
		return false
	}
	events.Session.Cancel(c.mode.String())
	switch {
	case c.mode == ModeFuzzy:
		c.mode = ModeBrowse
		c.fuzzy = ""
		c.matches = nil
		c.preview = ""
		c.selected = c.browseSelected
		c.browseSelected = 0
	case c.mode == ModeTypeahead:
		c.mode = ModeBrowse
		c.typeahead = ""
	case c.selected != 0:
		c.selected = 0
		c.arrowed = false
	default:
		c.exit(true, events.SessionReasonEscape)
	}
	return true
}

func (c *Controller) exit(restore bool, reason events.SessionReason) {
	c.active = false
	c.mode = ModeBrowse
	c.typeahead = ""
	c.fuzzy = ""
	c.matches = nil
	c.preview = ""
	c.selected = 0
	c.browseSelected = 0
	c.arrowed = false
	events.Session.Exit(restore, reason)
	if l, ok := c.host.(SessionListener); ok {
		l.SessionEnded(restore)
	}
}

func (c *Controller) load(items []buffer.Item) {
	c.items = buffer.Clone(items)
	c.itemLabels = c.labels.Labels(label.EntriesFromItems(c.items))
	c.displayPath = paths.Disambiguate(paths.EntriesFromItems(c.items))
}

func (c *Controller) rerank() {
	if c.fuzzy == "" {
		c.matches = nil
		return
	}
	candidates := make([]string, len(c.items))
	for i, item := range c.items {
		candidates[i] = c.displayPath[item.ID]
	}
	c.matches = rank.Indices(rank.Rank(c.fuzzy, candidates, c.opts.Cutoff))
}

// displayed is the ordered list the selection indexes into.
func (c *Controller) displayed() []buffer.Item {
	switch c.mode {
	case ModeFuzzy:
		if c.fuzzy == "" {
			return c.items
		}
		out := make([]buffer.Item, len(c.matches))
		for i, idx := range c.matches {
			out[i] = c.items[idx]
		}
		return out
	case ModeTypeahead:
		return c.labelMatches(c.typeahead)
	default:
		return c.items
	}
}

func (c *Controller) labelMatches(prefix string) []buffer.Item {
	var out []buffer.Item
	for _, item := range c.items {
		if l, ok := c.itemLabels[item.ID]; ok && strings.HasPrefix(l, prefix) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Controller) updatePreview() {
	c.preview = ""
	display := c.displayed()
	if c.selected >= 1 && c.selected <= len(display) {
		c.preview = display[c.selected-1].ID
	}
}

func (c *Controller) selectedID() (buffer.ID, bool) {
	display := c.displayed()
	if c.selected < 1 || c.selected > len(display) {
		return "", false
	}
	return display[c.selected-1].ID, true
}

func (c *Controller) browseSelectedID() (buffer.ID, bool) {
	if c.browseSelected < 1 || c.browseSelected > len(c.items) {
		return "", false
	}
	return c.items[c.browseSelected-1].ID, true
}

func printable(key string) bool {
	runes := []rune(key)
	return len(runes) == 1 && unicode.IsPrint(runes[0])
}
