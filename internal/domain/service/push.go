package service

import "context"

// MaxPushTokens is the largest token list one Multicast call accepts.
const MaxPushTokens = 500

// PushMessage is the notification shown on a customer's device.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushResult summarises one multicast. InvalidTokens lists the tokens the
// provider reported as unregistered or malformed.
type PushResult struct {
	Sent          int
	Failed        int
	InvalidTokens []string
}

// NotificationService delivers push notifications to device tokens.
type NotificationService interface {
	// Multicast sends msg to up to MaxPushTokens tokens. A returned error means
	// nothing was sent; per-token failures are reported in the result.
	Multicast(ctx context.Context, tokens []string, msg PushMessage) (PushResult, error)
}
