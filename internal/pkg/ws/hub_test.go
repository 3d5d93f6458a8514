package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
)

// fakeSession records everything sent to it.
type fakeSession struct {
	mu     sync.Mutex
	events []Event
}

func (s *fakeSession) Send(event Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return true
}

func (s *fakeSession) received() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func TestEmitReachesOnlyJoinedChannel(t *testing.T) {
	hub := NewHub()
	alice := &fakeSession{}
	bob := &fakeSession{}
	hub.Join(EmployeeChannel("alice"), alice)
	hub.Join(EmployeeChannel("bob"), bob)

	hub.Emit(EmployeeChannel("alice"), Event{Type: EventTaskAssigned, Data: "t1"})

	assert.Len(t, alice.received(), 1)
	assert.Empty(t, bob.received(), "no cross-talk between channels")
}

func TestEmitFansOutToAllSessionsOfUser(t *testing.T) {
	hub := NewHub()
	tab1 := &fakeSession{}
	tab2 := &fakeSession{}
	hub.Join(EmployeeChannel("alice"), tab1)
	hub.Join(EmployeeChannel("alice"), tab2)

	hub.Emit(EmployeeChannel("alice"), Event{Type: EventReceiveMessage, Data: "hi"})

	assert.Len(t, tab1.received(), 1)
	assert.Len(t, tab2.received(), 1)
}

func TestEmitToEmptyChannelIsSilentNoop(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() {
		hub.Emit(EmployeeChannel("ghost"), Event{Type: EventTaskAssigned})
	})
	assert.Equal(t, 0, hub.TotalSessions())
}

func TestLeaveIsIdempotent(t *testing.T) {
	hub := NewHub()
	s := &fakeSession{}
	hub.Join(TeamLeadChannel("lead"), s)
	assert.Equal(t, 1, hub.SessionCount(TeamLeadChannel("lead")))

	hub.Leave(s)
	hub.Leave(s)
	hub.Leave(&fakeSession{}) // never joined

	assert.Equal(t, 0, hub.SessionCount(TeamLeadChannel("lead")))
	assert.Equal(t, 0, hub.TotalSessions())

	hub.Emit(TeamLeadChannel("lead"), Event{Type: EventReportReviewed})
	assert.Empty(t, s.received())
}

func TestRejoinMovesSession(t *testing.T) {
	hub := NewHub()
	s := &fakeSession{}
	hub.Join(EmployeeChannel("a"), s)
	hub.Join(EmployeeChannel("b"), s)

	assert.Equal(t, 0, hub.SessionCount(EmployeeChannel("a")))
	assert.Equal(t, 1, hub.SessionCount(EmployeeChannel("b")))
	assert.Equal(t, 1, hub.TotalSessions())
}

func TestConcurrentJoinEmitLeave(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := &fakeSession{}
			hub.Join(EmployeeChannel("shared"), s)
			hub.Emit(EmployeeChannel("shared"), Event{Type: EventTyping})
			hub.Leave(s)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.TotalSessions())
}

func TestChannelFor(t *testing.T) {
	ch, ok := ChannelFor(user.RoleEmployee, "u1")
	assert.True(t, ok)
	assert.Equal(t, "employee_u1", ch)

	ch, ok = ChannelFor(user.RoleTeamLead, "u2")
	assert.True(t, ok)
	assert.Equal(t, "teamLead_u2", ch)

	_, ok = ChannelFor(user.RoleAdmin, "u3")
	assert.False(t, ok, "admins have no live channel")
}
