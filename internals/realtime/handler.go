package realtime

import (
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	authService "nestflow_backend/internals/features/users/auth/service"
	helper "nestflow_backend/internals/helpers"
)

// RegisterWebSocket mounts the relay endpoint at /ws. The handshake
// carries the access token (header, cookie, or ?token=); connections
// without a valid one are rejected before the upgrade.
func RegisterWebSocket(app *fiber.App, hub *Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.ErrUnauthorized
		}
		claims, err := authService.ParseAccessToken(raw)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		if id, ok := claims["id"].(string); ok {
			c.Locals("user_id", id)
		}
		return c.Next()
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		sub := NewLockedConn(conn)
		defer func() {
			hub.Remove(sub)
			conn.Close()
		}()

		for {
			var env Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			HandleEvent(hub, sub, env)
		}
	}))
}

// HandleEvent applies one inbound frame: join events subscribe the
// connection, relay events fan the untouched payload out to the target
// room. Unknown events are ignored.
func HandleEvent(hub *Hub, c Conn, env Envelope) {
	switch env.Event {
	case EventJoinChild:
		if id := decodeID(env.Data); id != "" {
			hub.Join(ChildRoom(id), c)
		}
	case EventJoinUser:
		if id := decodeID(env.Data); id != "" {
			hub.Join(UserRoom(id), c)
		}
	case EventJoinClassroom:
		if id := decodeID(env.Data); id != "" {
			hub.Join(ClassroomRoom(id), c)
		}
	case EventActivityCreated:
		if childID := decodeField(env.Data, "childId"); childID != "" {
			hub.Broadcast(ChildRoom(childID), Envelope{Event: EventActivityNew, Data: env.Data})
		}
		if classroomID := decodeField(env.Data, "classroomId"); classroomID != "" {
			hub.Broadcast(ClassroomRoom(classroomID), Envelope{Event: EventActivityNew, Data: env.Data})
		}
	case EventMessageSent:
		if recipientID := decodeField(env.Data, "recipientId"); recipientID != "" {
			hub.Broadcast(UserRoom(recipientID), Envelope{Event: EventMessageNew, Data: env.Data})
		}
	case EventAttendanceUpdate:
		if classroomID := decodeField(env.Data, "classroomId"); classroomID != "" {
			hub.Broadcast(ClassroomRoom(classroomID), Envelope{Event: EventAttendanceChanged, Data: env.Data})
		}
		if childID := decodeField(env.Data, "childId"); childID != "" {
			hub.Broadcast(ChildRoom(childID), Envelope{Event: EventAttendanceChanged, Data: env.Data})
		}
	default:
		log.Printf("[REALTIME] ignoring unknown event %q", env.Event)
	}
}

// decodeID accepts either a bare JSON string or an object with an id
// field, matching how clients address join events.
func decodeID(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return decodeField(data, "id")
}

func decodeField(data json.RawMessage, field string) string {
	if len(data) == 0 {
		return ""
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	if v, ok := m[field].(string); ok {
		return v
	}
	return ""
}
