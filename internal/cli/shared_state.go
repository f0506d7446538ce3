package cli

import (
	"context"

	"github.com/alexanderramin/plantmap/internal/app"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App  *App
	Ctrl *app.Controller

	// Terminal dimensions
	Width  int
	Height int
}

// Dispatch runs cmd through the session controller.
func (s *SharedState) Dispatch(cmd app.Command) (app.Result, error) {
	return s.Ctrl.Dispatch(context.Background(), cmd)
}

// Session returns the current session state.
func (s *SharedState) Session() app.State {
	return s.Ctrl.State()
}

// headerLines is the height of the title bar and its separator. Mouse
// coordinates reach views relative to the line below it.
const headerLines = 2

// footerLines covers the flash line, notification panel and key hints.
const footerLines = 3 + 5

// ContentHeight returns the rows left for view content.
func (s *SharedState) ContentHeight() int {
	h := s.Height - headerLines - footerLines
	if h < 5 {
		return 5
	}
	return h
}
