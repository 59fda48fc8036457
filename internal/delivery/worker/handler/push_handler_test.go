package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"burgerhub/config"
	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/domain/entity"
	"burgerhub/internal/domain/service"
	"burgerhub/internal/infra/pubsub"
	mockUC "burgerhub/internal/mocks/usecase"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestPushHandler(t *testing.T, provider, env string) (*PushHandler, *mockUC.MockOrderNotificationUsecase) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: provider, PushAudience: "https://worker.burgerhub.test/push"}}
	cfg.Env.Env = env
	notificationUC := mockUC.NewMockOrderNotificationUsecase(t)

	h := NewPushHandler(PushHandlerParams{
		Config:         cfg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		NotificationUC: notificationUC,
	})

	return h, notificationUC
}

func pushBody(t *testing.T, event *service.OrderEventMessage, attributes map[string]string) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg pubsub.PushEnvelope
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = "1"
	msg.Subscription = "projects/burgerhub/subscriptions/order-events"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func sampleEvent() *service.OrderEventMessage {
	return &service.OrderEventMessage{
		RequestID: "from-event",
		OrderEvent: &entity.OrderEvent{
			Type:       entity.OrderEventCreated,
			OrderID:    uuid.New(),
			CustomerID: uuid.New(),
			Status:     entity.OrderStatusCooking,
			TotalPrice: decimal.NewFromInt(36000),
		},
	}
}

func doPush(h *PushHandler, body string, header http.Header) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.HandlePush(c)

	return rec
}

func TestPushHandler_HandlePush(t *testing.T) {
	event := sampleEvent()

	tests := []struct {
		name       string
		result     error
		wantStatus int
	}{
		{"processed", nil, http.StatusOK},
		{"retryable failure", usecase.NewRetryableError(errors.New("db down")), http.StatusServiceUnavailable},
		{"permanent failure", errors.New("bad event"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, notificationUC := newTestPushHandler(t, constants.PubSubProviderLocal, constants.EnvDevelop)

			notificationUC.EXPECT().
				HandleOrderEvent(mock.Anything, mock.MatchedBy(func(msg *service.OrderEventMessage) bool {
					return msg.OrderID == event.OrderID
				})).
				Run(func(ctx context.Context, _ *service.OrderEventMessage) {
					assert.Equal(t, "from-attributes", deliverycontext.GetRequestIDFromContext(ctx))
				}).
				Return(tt.result).
				Once()

			rec := doPush(h, pushBody(t, event, map[string]string{"request_id": "from-attributes"}), nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPushHandler_HandlePush_BadPayload(t *testing.T) {
	h, _ := newTestPushHandler(t, constants.PubSubProviderLocal, constants.EnvDevelop)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"not base64", `{"message":{"data":"%%%"}}`},
		{"missing ids", `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte(`{"type":"order.created"}`)) + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doPush(h, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPushHandler_VerifiesGoogleToken(t *testing.T) {
	h, notificationUC := newTestPushHandler(t, constants.PubSubProviderGoogle, constants.EnvProduction)
	require.True(t, h.verifyPushAuth)

	h.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "https://worker.burgerhub.test/push", audience)
		switch token {
		case "good":
			return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
		case "wrong-issuer":
			return &idtoken.Payload{Issuer: "https://evil.example.com"}, nil
		default:
			return nil, errors.New("bad signature")
		}
	}

	body := pushBody(t, sampleEvent(), nil)

	rec := doPush(h, body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doPush(h, body, http.Header{"Authorization": {"Bearer forged"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doPush(h, body, http.Header{"Authorization": {"Bearer wrong-issuer"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	notificationUC.EXPECT().HandleOrderEvent(mock.Anything, mock.Anything).Return(nil).Once()
	rec = doPush(h, body, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}
