// Package ui contains the Bubble Tea program that draws a selection session
// inside a tmux popup.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are translated to key strings and fed one at a time to the
//     selection.Controller. Once the controller's session ends the program
//     quits.
//   - A backend.Watcher streams pane snapshots. The dispatcher stores them and
//     reports membership changes, which invalidate the controller's labels
//     before it refreshes its view of the items.
//   - Config reloads arrive as OptionsMsg values and replace the controller's
//     display options and key bindings in place.
//   - Pane previews are captured asynchronously and discarded when the
//     highlighted pane has moved on before the capture returns.
package ui
