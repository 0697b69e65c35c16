package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// RoutingShiftClosed is the routing key of shift.closed events
const RoutingShiftClosed = "shift.closed"

// ShiftClosedMessage announces a shift that was just closed. It only carries
// ids; consumers load the shift from the database.
type ShiftClosedMessage struct {
	ShiftID   string    `json:"shift_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewShiftClosedMessage(shiftID, userID string) *ShiftClosedMessage {
	return &ShiftClosedMessage{
		ShiftID:   shiftID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ShiftClosedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

var errIncompleteMessage = errors.New("message is missing shift_id or user_id")

// ShiftClosedMessageFromJSON decodes and checks a message body
func ShiftClosedMessageFromJSON(data []byte) (*ShiftClosedMessage, error) {
	var msg ShiftClosedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ShiftID == "" || msg.UserID == "" {
		return nil, errIncompleteMessage
	}
	return &msg, nil
}
