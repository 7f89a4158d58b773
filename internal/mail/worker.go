package mail

import (
	"context"
	"time"

	"travelnest/internal/platform/logger"
)

const (
	popTimeout  = 5 * time.Second
	maxAttempts = 3
)

// Worker drains the queue and delivers mail. Failed sends are requeued up to
// maxAttempts, giving at-least-once semantics; delivery failures never reach
// the request path that enqueued the job.
type Worker struct {
	queue  *Queue
	sender *Sender
	log    logger.Logger
}

func NewWorker(queue *Queue, sender *Sender, log logger.Logger) *Worker {
	if log == nil {
		log = logger.Nop()
	}
	return &Worker{queue: queue, sender: sender, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	w.log.Infof("mail worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Infof("mail worker stopping")
			return ctx.Err()
		default:
		}

		m, err := w.queue.Dequeue(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Errorf("mail queue pop failed: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if m == nil {
			continue
		}

		if err := w.sender.Send(*m); err != nil {
			m.Attempts++
			w.log.Errorf("mail send failed template=%s recipient=%s attempt=%d: %v",
				m.Template, m.Recipient, m.Attempts, err)
			if m.Attempts < maxAttempts {
				if qErr := w.queue.Enqueue(ctx, *m); qErr != nil {
					w.log.Errorf("mail requeue failed: %v", qErr)
				}
			}
			continue
		}

		w.log.Infof("mail sent template=%s recipient=%s", m.Template, m.Recipient)
	}
}
