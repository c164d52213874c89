package orders

import (
	"context"

	"github.com/storelab/storefront/pkg/logging"
	"github.com/storelab/storefront/pkg/webhook"
)

// UseCase contains the post-checkout order logic: lookups and the admin
// status transition. Order creation lives in the checkout engine.
type UseCase struct {
	repository Repository
	notifier   webhook.Notifier
}

func NewUseCase(repository Repository, notifier webhook.Notifier) *UseCase {
	return &UseCase{repository: repository, notifier: notifier}
}

// Get returns the order only when it belongs to userID.
func (uc *UseCase) Get(ctx context.Context, id, userID string) (*Order, error) {
	return uc.repository.Get(ctx, id, userID)
}

// ListByUser returns the caller's orders, newest first.
func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return uc.repository.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first. Privileged path.
func (uc *UseCase) ListAll(ctx context.Context) ([]Order, error) {
	return uc.repository.ListAll(ctx)
}

// UpdateStatus applies the new status and notifies the configured webhook
// endpoint. Transition legality is deliberately not checked.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if err := uc.repository.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order, err := uc.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logging.Log(logging.Fields{
		Component: "orders",
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Message:   "status updated",
	})
	uc.notifier.OrderStatusChanged(ctx, order.ID, order.UserID, string(order.Status))

	return order, nil
}
