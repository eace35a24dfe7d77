package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/entryline/visitdesk/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	VisitCheckedIn  = "visit.checked_in"
	VisitCheckedOut = "visit.checked_out"
	AccessGranted   = "access.granted"
	AccessDenied    = "access.denied"
	StickerPrinted  = "visit.sticker_printed"
)

// Event payloads
type VisitCheckedInEvent struct {
	VisitID        int64     `json:"visit_id"`
	VisitorID      int64     `json:"visitor_id"`
	DocumentNumber string    `json:"document_number"`
	HostName       string    `json:"host_name"`
	Department     string    `json:"department"`
	CheckInAt      time.Time `json:"check_in_at"`
}

type VisitCheckedOutEvent struct {
	VisitID    int64     `json:"visit_id"`
	VisitorID  int64     `json:"visitor_id"`
	CheckOutAt time.Time `json:"check_out_at"`
}

type AccessDecisionEvent struct {
	VisitID    int64     `json:"visit_id"`
	Department string    `json:"department"`
	Granted    bool      `json:"granted"`
	Reason     string    `json:"reason"`
	AccessTime time.Time `json:"access_time"`
}

type StickerPrintedEvent struct {
	VisitID   int64     `json:"visit_id"`
	Printed   bool      `json:"printed"`
	UpdatedAt time.Time `json:"updated_at"`
}
