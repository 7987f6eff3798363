package realtime

import "encoding/json"

// Client-to-server events.
const (
	EventJoinChild        = "join:child"
	EventJoinUser         = "join:user"
	EventJoinClassroom    = "join:classroom"
	EventActivityCreated  = "activity:created"
	EventMessageSent      = "message:sent"
	EventAttendanceUpdate = "attendance:update"
)

// Server-to-room events.
const (
	EventActivityNew       = "activity:new"
	EventMessageNew        = "message:new"
	EventAttendanceChanged = "attendance:changed"
)

// Envelope is the wire frame in both directions. Data passes through the
// relay untouched.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Room name builders, matching the ids clients join with.
func ChildRoom(id string) string     { return "child:" + id }
func UserRoom(id string) string      { return "user:" + id }
func ClassroomRoom(id string) string { return "classroom:" + id }
