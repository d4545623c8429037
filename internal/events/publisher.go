// Package events publishes build lifecycle notifications over NATS so other
// systems can react to manual builds. Publishing is fire and forget; a
// broken connection degrades to log warnings and never affects the build.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/site"
)

// Type names a build lifecycle event.
type Type string

const (
	TypeBuildStarted  Type = "build.started"
	TypeBuildFinished Type = "build.finished"
)

// Event is the JSON payload published for each notification.
type Event struct {
	Type            Type      `json:"type"`
	BuildID         string    `json:"build_id"`
	Project         string    `json:"project"`
	Version         string    `json:"version"`
	Outcome         string    `json:"outcome,omitempty"`
	RenderedPages   int       `json:"rendered_pages,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

func startedEvent(r *site.BuildReport) Event {
	return Event{
		Type:    TypeBuildStarted,
		BuildID: r.ID,
		Project: r.Project,
		Version: r.Version,
	}
}

func finishedEvent(r *site.BuildReport) Event {
	return Event{
		Type:            TypeBuildFinished,
		BuildID:         r.ID,
		Project:         r.Project,
		Version:         r.Version,
		Outcome:         string(r.Outcome),
		RenderedPages:   r.RenderedPages,
		DurationSeconds: r.Duration().Seconds(),
	}
}

// Publisher publishes build events to one NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to the NATS server at url.
func NewPublisher(url, subject string) (*Publisher, error) {
	if url == "" {
		return nil, fmt.Errorf("events URL is empty")
	}
	conn, err := nats.Connect(url, nats.Name("refman"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("Event publisher connected", "url", url, "subject", subject)
	return &Publisher{conn: conn, subject: subject}, nil
}

func (p *Publisher) publish(e Event) {
	e.Timestamp = time.Now()
	data, err := json.Marshal(e)
	if err != nil {
		slog.Warn("Failed to marshal build event", logfields.Error(err))
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		slog.Warn("Failed to publish build event", logfields.Error(err))
	}
}

// Observer returns a build observer publishing start and finish events.
func (p *Publisher) Observer() site.BuildObserver {
	return site.ObserverFuncs{
		BuildStart:    func(r *site.BuildReport) { p.publish(startedEvent(r)) },
		BuildComplete: func(r *site.BuildReport) { p.publish(finishedEvent(r)) },
	}
}

// Close closes the NATS connection.
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
