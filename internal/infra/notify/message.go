package notify

import (
	"encoding/json"

	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DriverAMQP   = "amqp"
	DriverOutbox = "outbox"
	DriverLog    = "log"
)

// Message is the wire form shared by every sink.
type Message struct {
	UserID  uuid.UUID           `json:"user_id"`
	Kind    shared.EventKind    `json:"kind"`
	Booking shared.BookingEvent `json:"booking"`
}

func RoutingKey(kind shared.EventKind) string {
	return "booking." + kind.String()
}

func encode(userID uuid.UUID, kind shared.EventKind, payload shared.BookingEvent) ([]byte, error) {
	return json.Marshal(Message{UserID: userID, Kind: kind, Booking: payload})
}
