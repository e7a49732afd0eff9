package ui

import (
	"strings"

	"github.com/atomicstack/tmux-jump/internal/selection"
)

// promptLine draws the fuzzy filter input with its caret. Other modes have
// no prompt.
func (m *Model) promptLine(rm selection.RenderModel) string {
	if rm.Mode != selection.ModeFuzzy {
		return ""
	}
	title := m.ctrl.Options().PromptTitle
	return styles.FilterPrompt.Render(title) + styles.Filter.Render(rm.Input) + m.filterCursor.View()
}

// footerHint lists the keys that do something in mode.
func (m *Model) footerHint(mode selection.Mode) string {
	keys := m.ctrl.Options().Keys
	verb := m.action.String()
	if m.action.Kind == selection.ActionCustom {
		verb = "pick"
	}
	hints := []string{}
	switch mode {
	case selection.ModeFuzzy:
		hints = append(hints,
			first(keys.Up)+"/"+first(keys.Down)+" move",
			first(keys.Confirm)+" "+verb,
			first(keys.Cancel)+" back",
		)
	case selection.ModeTypeahead:
		hints = append(hints,
			first(keys.Backspace)+" erase",
			first(keys.Cancel)+" back",
		)
	default:
		hints = append(hints,
			"label "+verb,
			first(keys.Fuzzy)+" filter",
			first(keys.Up)+"/"+first(keys.Down)+" move",
			first(keys.Cancel)+" quit",
		)
	}
	return strings.Join(hints, " · ")
}

func first(keys []string) string {
	if len(keys) == 0 {
		return "?"
	}
	return keys[0]
}
