package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"pointage/pkg/metrics"
)

// EventDispatcherInterface is the outbound-event boundary. Publication is
// queued; callers never wait on the broker and never see its errors.
type EventDispatcherInterface interface {
	Publish(event string, companyID uuid.UUID, payload interface{})
}

type outboundEvent struct {
	Name      string
	CompanyID uuid.UUID
	Payload   interface{}
}

type NatsEventDispatcher struct {
	conn    *nats.Conn
	queue   chan outboundEvent
	done    chan struct{}
	metrics *metrics.Registry
}

// NewNatsEventDispatcher builds the dispatcher. conn may be nil (no broker
// configured), in which case events are logged and dropped.
func NewNatsEventDispatcher(conn *nats.Conn, m *metrics.Registry) *NatsEventDispatcher {
	return &NatsEventDispatcher{
		conn:    conn,
		queue:   make(chan outboundEvent, 256),
		done:    make(chan struct{}),
		metrics: m,
	}
}

// Publish enqueues without blocking. A full queue drops the event with a
// warning: losing a best-effort event beats stalling a check-in.
func (d *NatsEventDispatcher) Publish(event string, companyID uuid.UUID, payload interface{}) {
	select {
	case d.queue <- outboundEvent{Name: event, CompanyID: companyID, Payload: payload}:
	default:
		d.metrics.ObserveEventDropped()
		logrus.WithFields(logrus.Fields{
			"event":      event,
			"company_id": companyID,
		}).Warn("event queue full, dropping event")
	}
}

func (d *NatsEventDispatcher) Start() {
	go d.run()
}

// Stop drains the queue and waits for the worker to finish.
func (d *NatsEventDispatcher) Stop(ctx context.Context) error {
	close(d.queue)
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *NatsEventDispatcher) run() {
	defer close(d.done)
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *NatsEventDispatcher) deliver(ev outboundEvent) {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logrus.WithError(err).WithField("event", ev.Name).Error("marshal event payload")
		return
	}

	if d.conn == nil {
		logrus.WithFields(logrus.Fields{
			"event":      ev.Name,
			"company_id": ev.CompanyID,
		}).Debug("no broker configured, event not delivered")
		return
	}

	subject := fmt.Sprintf("pointage.events.%s.%s", ev.CompanyID, ev.Name)
	if err := d.conn.Publish(subject, data); err != nil {
		logrus.WithError(err).WithField("subject", subject).Error("publish event")
	}
}
