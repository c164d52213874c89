// Package webhook delivers order status-change notifications to an external
// endpoint. Delivery is best effort: a failed call is logged and dropped,
// it never fails the request that triggered it.
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/storelab/storefront/pkg/logging"
)

// Notifier posts order events over HTTP.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, orderID, userID, status string)
}

// OrderStatusEvent is the delivered payload.
type OrderStatusEvent struct {
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type RestyNotifier struct {
	client *resty.Client
	url    string
}

func NewRestyNotifier(url string) *RestyNotifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2)
	return &RestyNotifier{client: client, url: url}
}

func (n *RestyNotifier) OrderStatusChanged(ctx context.Context, orderID, userID, status string) {
	event := OrderStatusEvent{
		OrderID:    orderID,
		UserID:     userID,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(n.url)
	if err != nil {
		logging.Log(logging.Fields{
			Component: "webhook",
			OrderID:   orderID,
			Status:    "delivery_failed",
			Error:     err.Error(),
		})
		return
	}
	if resp.IsError() {
		logging.Log(logging.Fields{
			Component: "webhook",
			OrderID:   orderID,
			Status:    "delivery_failed",
			Error:     fmt.Sprintf("endpoint returned %d", resp.StatusCode()),
		})
	}
}

// NopNotifier is used when no webhook endpoint is configured.
type NopNotifier struct{}

func (NopNotifier) OrderStatusChanged(context.Context, string, string, string) {}
