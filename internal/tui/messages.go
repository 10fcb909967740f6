package tui

import (
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/resource"
)

// Message types for the TUI

// StateMsg carries one emission of a resource stream. Closed is set once
// the stream has ended.
type StateMsg[T any] struct {
	State  resource.Resource[T]
	Closed bool
}

// ProgressMsg reports how many pages a warm run has loaded
type ProgressMsg struct {
	Loaded int
	Total  int
}

// WarmDoneMsg signals that a warm run finished
type WarmDoneMsg struct {
	Result domain.WarmResult
	Err    error
}
