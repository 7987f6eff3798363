package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	frames []Envelope
	fail   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.fail {
		return errors.New("write failed")
	}
	env, ok := v.(Envelope)
	if !ok {
		return errors.New("unexpected frame type")
	}
	f.frames = append(f.frames, env)
	return nil
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestBroadcastReachesEveryMember(t *testing.T) {
	hub := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	hub.Join(ChildRoom("c1"), a)
	hub.Join(ChildRoom("c1"), b)

	hub.Broadcast(ChildRoom("c1"), Envelope{Event: EventActivityNew, Data: raw(t, map[string]string{"childId": "c1"})})

	require.Len(t, a.frames, 1)
	require.Len(t, b.frames, 1)
	assert.Equal(t, EventActivityNew, a.frames[0].Event)
}

func TestBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	inRoom, outside := &fakeConn{}, &fakeConn{}
	hub.Join(ChildRoom("c1"), inRoom)
	hub.Join(ChildRoom("c2"), outside)

	hub.Broadcast(ChildRoom("c1"), Envelope{Event: EventActivityNew})

	assert.Len(t, inRoom.frames, 1)
	assert.Empty(t, outside.frames)
}

func TestBroadcastDropsFailedSubscriber(t *testing.T) {
	hub := NewHub()
	healthy, broken := &fakeConn{}, &fakeConn{fail: true}
	hub.Join(UserRoom("u1"), healthy)
	hub.Join(UserRoom("u1"), broken)

	hub.Broadcast(UserRoom("u1"), Envelope{Event: EventMessageNew})
	assert.Equal(t, 1, hub.RoomSize(UserRoom("u1")))

	// No retry for the dropped connection on the next broadcast.
	hub.Broadcast(UserRoom("u1"), Envelope{Event: EventMessageNew})
	assert.Len(t, healthy.frames, 2)
}

func TestLeaveAndRemove(t *testing.T) {
	hub := NewHub()
	c := &fakeConn{}
	hub.Join(ChildRoom("c1"), c)
	hub.Join(UserRoom("u1"), c)

	hub.Leave(ChildRoom("c1"), c)
	assert.Equal(t, 0, hub.RoomSize(ChildRoom("c1")))
	assert.Equal(t, 1, hub.RoomSize(UserRoom("u1")))

	hub.Remove(c)
	assert.Equal(t, 0, hub.RoomSize(UserRoom("u1")))
}

func TestHandleEventJoinAcceptsBareStringAndObject(t *testing.T) {
	hub := NewHub()
	c := &fakeConn{}

	HandleEvent(hub, c, Envelope{Event: EventJoinChild, Data: raw(t, "c1")})
	assert.Equal(t, 1, hub.RoomSize(ChildRoom("c1")))

	HandleEvent(hub, c, Envelope{Event: EventJoinClassroom, Data: raw(t, map[string]string{"id": "cls1"})})
	assert.Equal(t, 1, hub.RoomSize(ClassroomRoom("cls1")))
}

func TestHandleEventRelaysActivityUntouched(t *testing.T) {
	hub := NewHub()
	listener := &fakeConn{}
	hub.Join(ChildRoom("c1"), listener)

	payload := raw(t, map[string]interface{}{"childId": "c1", "title": "Lunch", "extra": 42})
	HandleEvent(hub, listener, Envelope{Event: EventActivityCreated, Data: payload})

	require.Len(t, listener.frames, 1)
	assert.Equal(t, EventActivityNew, listener.frames[0].Event)
	assert.JSONEq(t, string(payload), string(listener.frames[0].Data))
}

func TestHandleEventRoutesMessageToRecipient(t *testing.T) {
	hub := NewHub()
	sender, recipient := &fakeConn{}, &fakeConn{}
	hub.Join(UserRoom("u-sender"), sender)
	hub.Join(UserRoom("u-recipient"), recipient)

	HandleEvent(hub, sender, Envelope{
		Event: EventMessageSent,
		Data:  raw(t, map[string]string{"recipientId": "u-recipient", "content": "hi"}),
	})

	assert.Empty(t, sender.frames)
	require.Len(t, recipient.frames, 1)
	assert.Equal(t, EventMessageNew, recipient.frames[0].Event)
}

func TestHandleEventIncludesOriginWhenJoined(t *testing.T) {
	hub := NewHub()
	origin := &fakeConn{}
	hub.Join(ChildRoom("c1"), origin)

	HandleEvent(hub, origin, Envelope{
		Event: EventAttendanceUpdate,
		Data:  raw(t, map[string]string{"childId": "c1", "status": "PRESENT"}),
	})

	require.Len(t, origin.frames, 1)
	assert.Equal(t, EventAttendanceChanged, origin.frames[0].Event)
}

func TestHandleEventRoutesAttendanceToClassroom(t *testing.T) {
	hub := NewHub()
	dashboard := &fakeConn{}
	hub.Join(ClassroomRoom("cls1"), dashboard)

	HandleEvent(hub, dashboard, Envelope{
		Event: EventAttendanceUpdate,
		Data:  raw(t, map[string]string{"classroomId": "cls1", "childId": "c1", "status": "PRESENT"}),
	})

	require.Len(t, dashboard.frames, 1)
	assert.Equal(t, EventAttendanceChanged, dashboard.frames[0].Event)
}

// overlapConn counts writes that arrive while another write is still in
// flight. The websocket library forbids that.
type overlapConn struct {
	active   int32
	overlaps int32
	frames   int32
}

func (o *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&o.active, 1) > 1 {
		atomic.AddInt32(&o.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&o.frames, 1)
	atomic.AddInt32(&o.active, -1)
	return nil
}

func TestLockedConnSerializesConcurrentBroadcasts(t *testing.T) {
	hub := NewHub()
	underlying := &overlapConn{}
	sub := NewLockedConn(underlying)
	hub.Join(ClassroomRoom("cls1"), sub)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(ClassroomRoom("cls1"), Envelope{Event: EventAttendanceChanged})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&underlying.overlaps))
	assert.Equal(t, int32(8), atomic.LoadInt32(&underlying.frames))
}

func TestHandleEventIgnoresUnknownAndMalformed(t *testing.T) {
	hub := NewHub()
	c := &fakeConn{}
	hub.Join(ChildRoom("c1"), c)

	HandleEvent(hub, c, Envelope{Event: "bogus:event", Data: raw(t, "x")})
	HandleEvent(hub, c, Envelope{Event: EventActivityCreated, Data: raw(t, map[string]string{"title": "no child id"})})

	assert.Empty(t, c.frames)
}
