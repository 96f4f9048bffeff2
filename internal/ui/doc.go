// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// Screens are registered by name in a [Registry] and pushed onto the [Navigator] stack with a title, the
// terminal counterpart of a native navigation stack:
//  1. home : menu of the registered screens
//  2. tiles : the two-column board; moving the cursor and toggling a tile repacks the rows
//  3. dict : filterable word list with a debounced filter input and on-demand loading
//
// The [Navigator] is the bubbletea model. It owns the title bar, the help line and the back/quit keys and
// forwards everything else to the screen on top of the stack. Screens talk to the navigator through the
// [Msg] union type; asynchronous results carry the id of the screen that requested them so a result
// arriving after its screen was popped is dropped.
//
// Keyboard navigation uses arrow keys plus vim-style h/j/k/l where no text input is focused, with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
