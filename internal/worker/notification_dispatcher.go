package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/metrics"
)

// Notifier delivers a single order alert.
type Notifier interface {
	Notify(ctx context.Context, order model.Order) error
}

// ResultRecorder observes notification outcomes.
type ResultRecorder interface {
	NotificationResult(result string)
}

// NotificationDispatcher runs notifications on detached goroutines.
// Dispatch never blocks and never reports failures to the caller.
type NotificationDispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   *slog.Logger
	recorder ResultRecorder

	slots   *semaphore.Weighted
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// NewNotificationDispatcher constructs a dispatcher allowing up to concurrency in-flight calls.
func NewNotificationDispatcher(notifier Notifier, timeout time.Duration, concurrency int, logger *slog.Logger, recorder ResultRecorder) *NotificationDispatcher {
	if concurrency <= 0 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NotificationDispatcher{
		notifier: notifier,
		timeout:  timeout,
		logger:   logger,
		recorder: recorder,
		slots:    semaphore.NewWeighted(int64(concurrency)),
	}
}

// Dispatch schedules a notification for order. When every slot is busy or the
// dispatcher is stopped the notification is dropped.
func (d *NotificationDispatcher) Dispatch(order model.Order) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		d.logger.Warn("notification dropped after shutdown", slog.String("order", order.ID))
		d.record(metrics.NotificationDropped)
		return
	}
	if !d.slots.TryAcquire(1) {
		d.mu.Unlock()
		d.logger.Warn("notification dropped, all slots busy", slog.String("order", order.ID))
		d.record(metrics.NotificationDropped)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go d.deliver(order)
}

func (d *NotificationDispatcher) deliver(order model.Order) {
	defer d.wg.Done()
	defer d.slots.Release(1)
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notification panicked", slog.String("order", order.ID), slog.String("panic", fmt.Sprint(r)))
			d.record(metrics.NotificationFailed)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, order); err != nil {
		d.logger.Error("notification failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		d.record(metrics.NotificationFailed)
		return
	}
	d.record(metrics.NotificationSent)
}

// Stop rejects new notifications and waits for in-flight ones until ctx is done.
func (d *NotificationDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for notifications: %w", ctx.Err())
	}
}

func (d *NotificationDispatcher) record(result string) {
	if d.recorder != nil {
		d.recorder.NotificationResult(result)
	}
}
