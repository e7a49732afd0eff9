package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tmux-jump/internal/layout"
	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/selection"
)

const (
	previewMaxDisplayLines = 12 // inline preview below the list
	previewPanelMinWidth   = 40 // minimum cols for the side panel; below this the preview goes inline
)

// View renders the item list, the prompt, the status line and the preview.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	rm := m.ctrl.RenderModel()
	listWidth := max(rm.Width, 1)
	side := m.hasSidePreview(listWidth)

	lines := m.listLines(rm, listWidth, side)
	if prompt := m.promptLine(rm); prompt != "" {
		lines = append(lines, prompt)
	}
	if status := m.statusLine(); status != "" {
		lines = append(lines, status)
	}
	if m.showFooter {
		lines = append(lines, styles.Footer.Render(m.footerHint(rm.Mode)))
	}
	switch {
	case side:
		lines = clipLines(lines, listWidth)
	case m.width > 0:
		lines = clipLines(lines, m.width)
	}
	body := strings.Join(lines, "\n")

	if !shouldRenderPreview(m.preview) {
		return body
	}
	if side {
		height := max(len(lines), min(previewMaxDisplayLines+2, m.heightOr(previewMaxDisplayLines+2)))
		left := lipgloss.NewStyle().Width(listWidth).Render(body)
		panel := m.renderPreviewPanel(m.preview, m.width-listWidth-1, height)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", panel)
	}
	return body + "\n" + m.inlinePreview()
}

func (m *Model) heightOr(fallback int) int {
	if m.height > 0 {
		return m.height
	}
	return fallback
}

// hasSidePreview reports whether the preview fits to the right of the list.
func (m *Model) hasSidePreview(listWidth int) bool {
	return m.width > 0 && m.width-listWidth-1 >= previewPanelMinWidth
}

func (m *Model) listLines(rm selection.RenderModel, width int, side bool) []string {
	rows := rm.Rows()
	if len(rows) == 0 {
		return []string{styles.Info.Render("(no matches)")}
	}
	start, end := visibleRange(len(rows), rm.Selected, m.maxVisibleItems(rm, side))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i+1 == rm.Selected, width, rm))
	}
	return lines
}

// renderRow styles each element of row and pads it to width so the
// selection bar has an even right edge.
func (m *Model) renderRow(row layout.Row, selected bool, width int, rm selection.RenderModel) string {
	opts := m.ctrl.Options().Layout
	base := *styles.Item
	if selected {
		base = *styles.SelectedItem
	}
	elements := opts.Elements()
	cols := opts.Columns(row)
	parts := make([]string, len(cols))
	for i, e := range elements {
		text := cols[i]
		switch e {
		case layout.ElementStick:
			parts[i] = styles.Stick.Inherit(base).Render(text)
		case layout.ElementLabel:
			parts[i] = renderLabel(text, rm, base)
		default:
			if selected {
				parts[i] = base.Render(text)
			} else {
				parts[i] = styles.Path.Render(text)
			}
		}
	}
	line := strings.Join(parts, base.Render(opts.Separator()))
	if pad := width - layout.RowWidth(opts, row); pad > 0 {
		line += base.Render(strings.Repeat(" ", pad))
	}
	return line
}

// renderLabel dims the part of the label already typed.
func renderLabel(text string, rm selection.RenderModel, base lipgloss.Style) string {
	if rm.Mode == selection.ModeTypeahead && rm.Input != "" && strings.HasPrefix(text, rm.Input) {
		return styles.TypedLabel.Inherit(base).Render(rm.Input) + styles.Label.Inherit(base).Render(text[len(rm.Input):])
	}
	return styles.Label.Inherit(base).Render(text)
}

func (m *Model) statusLine() string {
	if err := m.ctrl.LastError(); err != nil {
		return styles.Error.Render(err.Error())
	}
	if m.backendLastErr != "" {
		return styles.Error.Render(m.backendLastErr)
	}
	if info := m.currentInfo(); info != "" {
		return styles.Info.Render(info)
	}
	return ""
}

func (m *Model) inlinePreview() string {
	data := m.preview
	lines := []string{styles.PreviewTitle.Render(previewTitleText(data))}
	switch {
	case data.err != "":
		lines = append(lines, styles.PreviewError.Render(data.err))
	case len(data.lines) == 0 && data.loading:
		lines = append(lines, styles.PreviewBody.Render("Loading…"))
	default:
		body := data.lines
		if len(body) > previewMaxDisplayLines {
			body = body[len(body)-previewMaxDisplayLines:]
		}
		lines = append(lines, body...)
	}
	if m.width > 0 {
		lines = clipLines(lines, m.width)
	}
	return strings.Join(lines, "\n")
}

// renderPreviewPanel builds the bordered preview box as a string with exactly
// height rows and totalWidth columns. The most recent output is shown.
func (m *Model) renderPreviewPanel(preview *previewData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	frame := styles.PreviewFrame

	innerW := max(totalWidth-2, 1)
	innerH := max(height-2, 1)

	var content []string
	bodyStyle := styles.PreviewBody
	raw := false
	switch {
	case preview.err != "":
		content = []string{preview.err}
		bodyStyle = styles.PreviewError
	case len(preview.lines) == 0 && preview.loading:
		content = []string{"Loading…"}
	default:
		content = preview.lines
		if len(content) > innerH {
			content = content[len(content)-innerH:]
		}
		raw = true
	}

	titleSeg := " " + previewTitleText(preview) + " "
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg)
	if dashes < 0 {
		titleSeg = " … "
		dashes = max(totalWidth-4-lipgloss.Width(titleSeg), 0)
	}
	rows := make([]string, 0, height)
	rows = append(rows, frame.Render(tlc+hz)+styles.PreviewTitle.Render(titleSeg)+frame.Render(strings.Repeat(hz, dashes)+hz+trc))
	for i := 0; i < innerH; i++ {
		var text string
		if i < len(content) {
			text = content[i]
		}
		w := lipgloss.Width(text)
		if w > innerW {
			text = truncate.StringWithTail(text, uint(innerW-1), "…")
			w = lipgloss.Width(text)
		}
		if w < innerW {
			text += strings.Repeat(" ", innerW-w)
		}
		if !raw {
			text = bodyStyle.Render(text)
		}
		rows = append(rows, frame.Render(vt)+text+frame.Render(vt))
	}
	rows = append(rows, frame.Render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}

func shouldRenderPreview(data *previewData) bool {
	return data != nil && (data.loading || data.err != "" || len(data.lines) > 0)
}

func previewTitleText(data *previewData) string {
	if data == nil {
		return "Preview"
	}
	if data.label != "" {
		return fmt.Sprintf("Preview: %s (%s)", data.label, data.target)
	}
	return "Preview: " + data.target
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	events.UI.Resize(resize.Width, resize.Height)
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

// maxVisibleItems is how many rows fit once the other lines are placed, or
// -1 when the height is unknown.
func (m *Model) maxVisibleItems(rm selection.RenderModel, side bool) int {
	if m.height <= 0 {
		return -1
	}
	used := 0
	if rm.Mode == selection.ModeFuzzy {
		used++
	}
	if m.statusLine() != "" {
		used++
	}
	if m.showFooter {
		used++
	}
	if !side && shouldRenderPreview(m.preview) {
		used += 1 + min(max(len(m.preview.lines), 1), previewMaxDisplayLines)
	}
	return max(m.height-used, 1)
}

// visibleRange picks a window of at most limit rows that keeps selected
// (1-based, 0 for none) in view.
func visibleRange(n, selected, limit int) (int, int) {
	if limit <= 0 || n <= limit {
		return 0, n
	}
	start := 0
	if selected > 0 {
		start = selected - 1 - limit/2
	}
	start = max(0, min(start, n-limit))
	return start, start + limit
}

func clipLines(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "…")
		}
		out[i] = line
	}
	return out
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
