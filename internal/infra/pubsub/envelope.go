package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"burgerhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// AttrRequestID is the message attribute holding the originating request id.
const AttrRequestID = "request_id"

// PushEnvelope is the JSON body Pub/Sub POSTs to a push subscription. The
// local publisher fabricates the same shape so the notifier has one input format.
type PushEnvelope struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewPushEnvelope wraps event the way a push subscription delivers it.
func NewPushEnvelope(event *service.OrderEventMessage, subscription string) (*PushEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode order event")
	}

	env := &PushEnvelope{Subscription: subscription}
	env.Message.Data = base64.StdEncoding.EncodeToString(payload)
	env.Message.Attributes = EventAttributes(event)
	env.Message.MessageID = uuid.NewString()
	env.Message.PublishTime = time.Now().UTC().Format(time.RFC3339Nano)

	return env, nil
}

// OrderEvent decodes the envelope payload. A request id found only in the
// attributes is copied onto the returned event.
func (e *PushEnvelope) OrderEvent() (*service.OrderEventMessage, error) {
	data, err := base64.StdEncoding.DecodeString(e.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "message data is not base64")
	}

	event, err := DecodeOrderEvent(data)
	if err != nil {
		return nil, err
	}
	if attr := e.Message.Attributes[AttrRequestID]; attr != "" {
		event.RequestID = attr
	}

	return event, nil
}

// DecodeOrderEvent parses an order event and rejects one without order or customer.
func DecodeOrderEvent(data []byte) (*service.OrderEventMessage, error) {
	var event service.OrderEventMessage
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "malformed order event")
	}
	if event.OrderEvent == nil || event.OrderID == uuid.Nil || event.CustomerID == uuid.Nil {
		return nil, errors.New("order event is missing order or customer id")
	}

	return &event, nil
}

// EventAttributes is the metadata every provider attaches for routing and tracing.
func EventAttributes(event *service.OrderEventMessage) map[string]string {
	attributes := map[string]string{
		"type":     string(event.Type),
		"order_id": event.OrderID.String(),
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return attributes
}
