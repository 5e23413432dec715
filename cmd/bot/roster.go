package main

import (
	"context"
	"sync"

	"github.com/lynxbot/lynx/pkg/entities"
)

// ticketState is the cached state of one active ticket. Its mutex serializes
// every roster mutation for that ticket; the persisted row is the source of
// truth and the cached ticket is rehydrated from it on demand.
type ticketState struct {
	mu sync.Mutex

	// ticket is nil until first loaded (or after a process restart).
	ticket *entities.Ticket
}

// load returns the cached ticket, rehydrating it from the store when the
// cache is empty. Returns nil when the channel has no active ticket. The
// caller must hold the state mutex.
func (s *ticketState) load(ctx context.Context, a IApp, guildID, channelID string) (*entities.Ticket, error) {
	if s.ticket != nil {
		return s.ticket, nil
	}

	ticket, err := a.TicketDal().GetActiveTicket(ctx, guildID, channelID)
	if err != nil {
		return nil, err
	}
	s.ticket = ticket
	return ticket, nil
}

// ticketRegistry holds the per-channel ticket state.
type ticketRegistry struct {
	mu     sync.Mutex
	states map[string]*ticketState
}

func newTicketRegistry() *ticketRegistry {
	return &ticketRegistry{
		states: make(map[string]*ticketState),
	}
}

// state returns the state for the given channel, creating it if needed.
func (r *ticketRegistry) state(channelID string) *ticketState {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.states[channelID]
	if !ok {
		s = new(ticketState)
		r.states[channelID] = s
	}
	return s
}

// put seeds the state for a freshly created ticket.
func (r *ticketRegistry) put(channelID string, t *entities.Ticket) {
	s := r.state(channelID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticket = t
}

// forget drops the state for a closed ticket.
func (r *ticketRegistry) forget(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, channelID)
}
