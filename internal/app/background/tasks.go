package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	usecase "github.com/LavaJover/shvark-recon-service/internal/usecase/transaction"
)

// BackgroundTasks owns the periodic refresh loops and the cross-process
// invalidation subscription. User and admin views poll at distinct cadences;
// every trigger is just a redundant, idempotent pipeline run.
type BackgroundTasks struct {
	Usecase       usecase.TransactionUsecase
	Subscriber    domain.SubscriberPort
	Topic         string
	GroupID       string
	UserInterval  time.Duration
	AdminInterval time.Duration
}

func NewBackgroundTasks(uc usecase.TransactionUsecase, sub domain.SubscriberPort, topic, groupID string, userInterval, adminInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		Usecase:       uc,
		Subscriber:    sub,
		Topic:         topic,
		GroupID:       groupID,
		UserInterval:  userInterval,
		AdminInterval: adminInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startPollLoop(ctx, "poll_user", bt.UserInterval)
	go bt.startPollLoop(ctx, "poll_admin", bt.AdminInterval)
	go bt.startInvalidationLoop(ctx)
}

func (bt *BackgroundTasks) startPollLoop(ctx context.Context, trigger string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := bt.Usecase.Refresh(ctx, trigger); err != nil {
				slog.Error("scheduled refresh failed", "trigger", trigger, "error", err.Error())
			}
		}
	}
}

// startInvalidationLoop re-runs the pipeline whenever another process signals
// that a relevant cache or the store changed.
func (bt *BackgroundTasks) startInvalidationLoop(ctx context.Context) {
	if bt.Subscriber == nil {
		return
	}

	msgs, err := bt.Subscriber.Subscribe(bt.Topic, bt.GroupID)
	if err != nil {
		slog.Error("failed to subscribe to invalidation topic", "topic", bt.Topic, "error", err.Error())
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				slog.Warn("invalidation subscription closed")
				return
			}
			slog.Debug("invalidation received", "key", string(msg.Key))
			if _, err := bt.Usecase.Refresh(ctx, "invalidation"); err != nil {
				slog.Error("invalidation refresh failed", "error", err.Error())
			}
		}
	}
}
