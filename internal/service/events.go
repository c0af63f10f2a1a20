package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/hireflowhq/hireflow-api/internal/observability"
)

const feedBufferSize = 16

// Event kinds pushed onto the HR event feed.
const (
	EventMailQueued           = "mail_queued"
	EventInterviewScheduled   = "interview_scheduled"
	EventInterviewRescheduled = "interview_rescheduled"
	EventFeedbackSubmitted    = "feedback_submitted"
)

// Event is a single item on the staff-facing live feed.
type Event struct {
	Type          string    `json:"type"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceName string    `json:"reference_name,omitempty"`
	Message       string    `json:"message"`
	At            time.Time `json:"at"`
}

type feedEnvelope struct {
	Source string `json:"source"`
	Event  Event  `json:"event"`
}

// EventFeed broadcasts HR events to in-process websocket subscribers and
// fans them out across nodes via NATS. The NATS connection is optional;
// without one the feed stays node-local.
type EventFeed struct {
	nats    *nats.Conn
	subject string
	logger  zerolog.Logger
	nodeID  string

	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewEventFeed constructs the feed.
func NewEventFeed(natsConn *nats.Conn, subject string, logger zerolog.Logger) *EventFeed {
	return &EventFeed{
		nats:        natsConn,
		subject:     subject,
		logger:      logger.With().Str("component", "event_feed").Logger(),
		nodeID:      uuid.NewString(),
		subscribers: make(map[chan Event]struct{}),
	}
}

// Start begins consuming cross-node events. Safe to call with no NATS wired.
func (f *EventFeed) Start(ctx context.Context) {
	if f.nats == nil || f.subject == "" {
		return
	}

	sub, err := f.nats.QueueSubscribe(f.subject, "hireflow-feed", func(msg *nats.Msg) {
		f.handleRemote(msg.Data)
	})
	if err != nil {
		f.logger.Error().Err(err).Msg("failed to subscribe to event feed subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			f.logger.Warn().Err(err).Msg("failed to drain event feed subscription")
		}
	}()
}

// Publish delivers the event locally and to peer nodes.
func (f *EventFeed) Publish(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	f.broadcast(event)

	if f.nats == nil || f.subject == "" {
		return
	}

	payload, err := json.Marshal(feedEnvelope{Source: f.nodeID, Event: event})
	if err != nil {
		f.logger.Warn().Err(err).Msg("failed to encode feed event")
		return
	}
	if err := f.nats.Publish(f.subject, payload); err != nil && !errors.Is(err, context.Canceled) {
		f.logger.Warn().Err(err).Msg("failed to publish feed event")
	}
}

// Subscribe registers a feed listener and returns its channel plus a cleanup.
func (f *EventFeed) Subscribe() (<-chan Event, func()) {
	channel := make(chan Event, feedBufferSize)

	f.mu.Lock()
	f.subscribers[channel] = struct{}{}
	f.mu.Unlock()
	observability.FeedClientsActive().Inc()

	cleanup := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[channel]; ok {
			delete(f.subscribers, channel)
			close(channel)
		}
		f.mu.Unlock()
		observability.FeedClientsActive().Dec()
	}

	return channel, cleanup
}

func (f *EventFeed) handleRemote(payload []byte) {
	var envelope feedEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		f.logger.Warn().Err(err).Msg("invalid feed event payload")
		return
	}
	if envelope.Source == f.nodeID {
		return
	}
	f.broadcast(envelope.Event)
}

func (f *EventFeed) broadcast(event Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for channel := range f.subscribers {
		select {
		case channel <- event:
		default:
		}
	}
}
