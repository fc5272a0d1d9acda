package workers

import (
	"context"
	"log"
	"time"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

const deliveryTimeout = 10 * time.Second

// NotifierWorker drains ring-closure notifications to the configured notifier
// in the background. Enqueue never blocks the caller: delivery is fire and
// forget, and a full queue drops the notification with a log line.
type NotifierWorker struct {
	notifier domain.Notifier
	jobs     chan domain.Notification
}

func NewNotifierWorker(notifier domain.Notifier) *NotifierWorker {
	return &NotifierWorker{
		notifier: notifier,
		jobs:     make(chan domain.Notification, 100),
	}
}

func (w *NotifierWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Notifier Worker started in background...")
		for {
			select {
			case n := <-w.jobs:
				w.deliver(ctx, n)
			case <-ctx.Done():
				log.Println("Notifier Worker shutting down...")
				return
			}
		}
	}()
}

func (w *NotifierWorker) Enqueue(n domain.Notification) {
	select {
	case w.jobs <- n:
	default:
		log.Printf("Notifier Worker queue full! Dropping notification %q", n.Title)
	}
}

func (w *NotifierWorker) deliver(ctx context.Context, n domain.Notification) {
	deliverCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	if err := w.notifier.Notify(deliverCtx, n); err != nil {
		// Single attempt. Delivery failure never propagates anywhere.
		log.Printf("Worker failed to deliver notification %q: %v", n.Title, err)
		return
	}
	log.Printf("Notification delivered: %s", n.Title)
}
