package tui

import (
	"github.com/heartmarshall/ruendict/internal/service/search"
	"github.com/heartmarshall/ruendict/internal/service/session"
)

// LookupDoneMsg carries the result of an asynchronous lookup started for
// Ticket.
type LookupDoneMsg struct {
	Ticket session.Ticket
	Result search.Result
}
