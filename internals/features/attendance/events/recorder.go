package events

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	KindClockIn      = "clock_in"
	KindClockOut     = "clock_out"
	KindAutoClockOut = "auto_clock_out"

	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Event is one gate decision, accepted or rejected.
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind       string             `bson:"kind" json:"kind"`
	Outcome    string             `bson:"outcome" json:"outcome"`
	Reason     string             `bson:"reason,omitempty" json:"reason,omitempty"`
	StaffID    string             `bson:"staff_id" json:"staff_id"`
	StaffName  string             `bson:"staff_name,omitempty" json:"staff_name,omitempty"`
	LocationID string             `bson:"location_id,omitempty" json:"location_id,omitempty"`
	RecordID   string             `bson:"record_id,omitempty" json:"record_id,omitempty"`
	Latitude   *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude  *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Accuracy   *float64           `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
	Distance   *float64           `bson:"distance,omitempty" json:"distance,omitempty"`
	At         time.Time          `bson:"at" json:"at"`
}

type Filter struct {
	StaffID string
	Outcome string
	Since   *time.Time
}

type Recorder interface {
	Record(ctx context.Context, ev Event) error
	Recent(ctx context.Context, f Filter, limit int) ([]Event, error)
}

// LogRecorder is used when no document store is configured.
type LogRecorder struct{}

func (LogRecorder) Record(_ context.Context, ev Event) error {
	if ev.Outcome == OutcomeRejected {
		log.Printf("[ATTENDANCE-EVENT] %s rejected staff=%s reason=%s", ev.Kind, ev.StaffID, ev.Reason)
		return nil
	}
	log.Printf("[ATTENDANCE-EVENT] %s accepted staff=%s record=%s", ev.Kind, ev.StaffID, ev.RecordID)
	return nil
}

func (LogRecorder) Recent(context.Context, Filter, int) ([]Event, error) {
	return []Event{}, nil
}
