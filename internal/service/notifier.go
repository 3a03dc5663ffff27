package service

import "go-stock-ledger/internal/ws"

// Notifier receives live events for connected dashboards. *ws.Hub satisfies it.
type Notifier interface {
	Publish(ev ws.Event)
}

// Actor identifies the authenticated user behind a request.
type Actor struct {
	ID    string
	Name  string
	Email string
}

func (a Actor) event() *ws.Actor {
	return &ws.Actor{ID: a.ID, Name: a.Name, Email: a.Email}
}

func (a Actor) displayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Email != "" {
		return a.Email
	}
	return a.ID
}

// Thresholds drive the stock_level of catalog responses and the low-stock list.
type Thresholds struct {
	Low    int
	Medium int
}
