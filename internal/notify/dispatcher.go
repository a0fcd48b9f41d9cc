package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Noop drops every notification
type Noop struct{}

// Notify does nothing
func (Noop) Notify(context.Context, Notification) {}

// AsyncDispatcher delivers each notification in its own goroutine, detached from the request
type AsyncDispatcher struct {
	deliverer Deliverer
	timeout   time.Duration
	rec       Recorder
	log       Logger

	wg sync.WaitGroup
}

// NewAsyncDispatcher creates a dispatcher that gives each delivery at most timeout
func NewAsyncDispatcher(deliverer Deliverer, timeout time.Duration, rec Recorder, log Logger) *AsyncDispatcher {
	return &AsyncDispatcher{
		deliverer: deliverer,
		timeout:   timeout,
		rec:       rec,
		log:       log,
	}
}

// Notify starts the delivery and returns immediately
func (d *AsyncDispatcher) Notify(_ context.Context, n Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("notify: panic delivering %s for booking %s: %v", n.Kind, n.BookingID, r)
				d.rec.Notification(string(n.Kind), ResultFailed)
			}
		}()

		// request cancellation must not abort the e-mail
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		report(d.log, d.rec, n, d.deliverer.Deliver(ctx, n))
	}()
}

// Wait blocks until in-flight deliveries finish or ctx expires
func (d *AsyncDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueDispatcher pushes notifications onto the queue for the notify worker
type QueueDispatcher struct {
	pub Publisher
	rec Recorder
	log Logger
}

// NewQueueDispatcher creates a new queue dispatcher
func NewQueueDispatcher(pub Publisher, rec Recorder, log Logger) *QueueDispatcher {
	return &QueueDispatcher{pub: pub, rec: rec, log: log}
}

// Notify serializes and enqueues n; failures are logged
func (d *QueueDispatcher) Notify(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		d.log.Error("notify: %v: %s for booking %s: %v", ErrEncode, n.Kind, n.BookingID, err)
		d.rec.Notification(string(n.Kind), ResultFailed)
		return
	}

	if err := d.pub.Publish(context.WithoutCancel(ctx), payload); err != nil {
		d.log.Error("notify: failed to enqueue %s for booking %s: %v", n.Kind, n.BookingID, err)
		d.rec.Notification(string(n.Kind), ResultFailed)
		return
	}

	d.rec.Notification(string(n.Kind), ResultQueued)
}

// Worker delivers notifications popped from the queue
type Worker struct {
	consumer  Consumer
	deliverer Deliverer
	timeout   time.Duration
	rec       Recorder
	log       Logger
}

// NewWorker creates a new queue worker
func NewWorker(consumer Consumer, deliverer Deliverer, timeout time.Duration, rec Recorder, log Logger) *Worker {
	return &Worker{
		consumer:  consumer,
		deliverer: deliverer,
		timeout:   timeout,
		rec:       rec,
		log:       log,
	}
}

// Run consumes until ctx is cancelled
func (w *Worker) Run(ctx context.Context) error {
	return w.consumer.Consume(ctx, w.handle)
}

func (w *Worker) handle(ctx context.Context, payload []byte) error {
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	// the payload is already popped, finish it even when ctx is cancelled
	deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()

	err := w.deliverer.Deliver(deliverCtx, n)
	report(w.log, w.rec, n, err)
	if isSkip(err) {
		return nil
	}
	return err
}

// report logs and counts the outcome of one delivery
func report(log Logger, rec Recorder, n Notification, err error) {
	switch {
	case err == nil:
		log.Info("notify: sent %s for booking %s", n.Kind, n.BookingID)
		rec.Notification(string(n.Kind), ResultSent)
	case isSkip(err):
		log.Info("notify: skipped %s for booking %s: %v", n.Kind, n.BookingID, err)
		rec.Notification(string(n.Kind), ResultSkipped)
	default:
		log.Error("notify: failed %s for booking %s: %v", n.Kind, n.BookingID, err)
		rec.Notification(string(n.Kind), ResultFailed)
	}
}
