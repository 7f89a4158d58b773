package mail

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey = "mail:jobs"

	TemplateBookingConfirmation = "booking_confirmation"
)

// Message is one queued mail job. Delivery is at-least-once: a consumer that
// fails after popping may requeue, so duplicate sends are tolerated downstream.
type Message struct {
	Template  string            `json:"template"`
	Recipient string            `json:"recipient"`
	Context   map[string]string `json:"context"`
	Attempts  int               `json:"attempts"`
}

// Queue is a durable redis-list work queue decoupling mail delivery from the
// requests that trigger it.
type Queue struct {
	rdb *redis.Client
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb}
}

func (q *Queue) Enqueue(ctx context.Context, m Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, queueKey, b).Err()
}

// Dequeue blocks up to timeout for the next job. Returns (nil, nil) when the
// queue stayed empty.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Message, error) {
	res, err := q.rdb.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(res) != 2 {
		return nil, nil
	}

	var m Message
	if err := json.Unmarshal([]byte(res[1]), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, queueKey).Result()
}
