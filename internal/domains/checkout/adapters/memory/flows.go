package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/application"
)

// FlowFactory builds a fresh checkout flow for a shopping session.
type FlowFactory func(flowID, sessionID string) *application.Flow

type entry struct {
	flow    *application.Flow
	session string
	seen    time.Time
}

// Flows keeps the open checkout flows. A session has at most one open flow.
type Flows struct {
	factory FlowFactory
	now     func() time.Time

	mu        sync.Mutex
	flows     map[string]entry
	bySession map[string]string
}

func NewFlows(factory FlowFactory) *Flows {
	return &Flows{
		factory:   factory,
		now:       time.Now,
		flows:     map[string]entry{},
		bySession: map[string]string{},
	}
}

// Open enters the order page for the session. A flow the session left open is abandoned.
func (f *Flows) Open(sessionID string) *application.Flow {
	id := uuid.NewString()
	flow := f.factory(id, sessionID)

	f.mu.Lock()
	previous, ok := f.flows[f.bySession[sessionID]]
	if ok {
		delete(f.flows, f.bySession[sessionID])
	}
	f.flows[id] = entry{flow: flow, session: sessionID, seen: f.now()}
	f.bySession[sessionID] = id
	f.mu.Unlock()

	if ok {
		previous.flow.Abandon()
	}
	return flow
}

// Get returns the open flow, checking it belongs to the session.
func (f *Flows) Get(flowID, sessionID string) (*application.Flow, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.flows[flowID]
	if !ok || e.session != sessionID {
		return nil, false
	}
	e.seen = f.now()
	f.flows[flowID] = e
	return e.flow, true
}

// Close abandons the flow and forgets it.
func (f *Flows) Close(flowID, sessionID string) bool {
	f.mu.Lock()
	e, ok := f.flows[flowID]
	if ok && e.session == sessionID {
		delete(f.flows, flowID)
		if f.bySession[sessionID] == flowID {
			delete(f.bySession, sessionID)
		}
	}
	f.mu.Unlock()

	if !ok || e.session != sessionID {
		return false
	}
	e.flow.Abandon()
	return true
}

// HasSession reports whether the session has an open flow.
func (f *Flows) HasSession(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.bySession[sessionID]
	return ok
}

// Evict abandons and forgets flows untouched for longer than idle. It returns
// the number of flows dropped.
func (f *Flows) Evict(idle time.Duration) int {
	cutoff := f.now().Add(-idle)
	var stale []*application.Flow

	f.mu.Lock()
	for id, e := range f.flows {
		if !e.seen.Before(cutoff) {
			continue
		}
		delete(f.flows, id)
		if f.bySession[e.session] == id {
			delete(f.bySession, e.session)
		}
		stale = append(stale, e.flow)
	}
	f.mu.Unlock()

	for _, flow := range stale {
		flow.Abandon()
	}
	return len(stale)
}
