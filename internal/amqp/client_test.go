package amqp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type fakeAck struct {
	mu     sync.Mutex
	acks   int
	nacks  []bool // requeue flag per nack
	signal chan struct{}
}

func (f *fakeAck) Ack(tag uint64, multiple bool) error {
	f.mu.Lock()
	f.acks++
	f.mu.Unlock()
	f.signal <- struct{}{}
	return nil
}

func (f *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	f.mu.Lock()
	f.nacks = append(f.nacks, requeue)
	f.mu.Unlock()
	f.signal <- struct{}{}
	return nil
}

func (f *fakeAck) Reject(tag uint64, requeue bool) error { return nil }

func TestShiftClosedMessageFromJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"shift_id":"s1","user_id":"u1","timestamp":"2025-03-01T10:00:00Z"}`, false},
		{"missing shift", `{"user_id":"u1"}`, true},
		{"not json", `shift s1 closed`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ShiftClosedMessageFromJSON([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (msg.ShiftID != "s1" || msg.UserID != "u1") {
				t.Fatalf("unexpected message: %+v", msg)
			}
		})
	}
}

func TestHandleDeliveriesAckNackPolicy(t *testing.T) {
	ack := &fakeAck{signal: make(chan struct{}, 3)}
	msgs := make(chan amqp091.Delivery, 3)

	good, _ := NewShiftClosedMessage("ok", "u1").ToJSON()
	failing, _ := NewShiftClosedMessage("boom", "u1").ToJSON()
	msgs <- amqp091.Delivery{Acknowledger: ack, Body: good}
	msgs <- amqp091.Delivery{Acknowledger: ack, Body: []byte("garbage")}
	msgs <- amqp091.Delivery{Acknowledger: ack, Body: failing}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- handleDeliveries(ctx, msgs, func(_ context.Context, m *ShiftClosedMessage) error {
			if m.ShiftID == "boom" {
				return errors.New("sheet unavailable")
			}
			return nil
		})
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-ack.signal:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for deliveries")
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	ack.mu.Lock()
	defer ack.mu.Unlock()
	if ack.acks != 1 {
		t.Fatalf("acks = %d, want 1", ack.acks)
	}
	if len(ack.nacks) != 2 || ack.nacks[0] != false || ack.nacks[1] != true {
		t.Fatalf("nacks = %v, want [false true]", ack.nacks)
	}
}
