// Package push receives backend push events and routes them to their consumers.
package push

import (
	"encoding/json"
	"fmt"

	"github.com/and161185/kaspi-console/internal/model"
	"go.uber.org/zap"
)

const (
	EventOrderStatusUpdate = "orderStatusUpdate"
	EventNewComment        = "newComment"
)

// Envelope is the wire form of every push message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type StatusSink interface {
	Apply(update model.OrderStatusUpdate) error
}

type CommentSink interface {
	Notify(event model.CommentEvent)
}

type Dispatcher struct {
	statuses StatusSink
	comments CommentSink
	logger   *zap.SugaredLogger
}

func NewDispatcher(statuses StatusSink, comments CommentSink, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{statuses: statuses, comments: comments, logger: logger}
}

// Dispatch decodes one message and hands it to its sink. Unknown events are
// skipped.
func (d *Dispatcher) Dispatch(message []byte) error {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		return fmt.Errorf("decode push envelope: %w", err)
	}

	switch env.Event {
	case EventOrderStatusUpdate:
		var update model.OrderStatusUpdate
		if err := json.Unmarshal(env.Data, &update); err != nil {
			return fmt.Errorf("decode %s: %w", env.Event, err)
		}
		if err := d.statuses.Apply(update); err != nil {
			return err
		}
		d.logger.Infof("order %s pushed to %s", update.OrderID, update.NewStatus)
	case EventNewComment:
		var event model.CommentEvent
		if err := json.Unmarshal(env.Data, &event); err != nil {
			return fmt.Errorf("decode %s: %w", env.Event, err)
		}
		d.comments.Notify(event)
	default:
		d.logger.Warnf("ignore push event %q", env.Event)
	}
	return nil
}
