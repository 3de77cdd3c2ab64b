package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"reviewdesk/models"

	"github.com/hibiken/asynq"
)

const TypeReviewReceived = "review:received"

// NewReviewReceivedTask wraps payload into a queued task, retried a few times on failure.
func NewReviewReceivedTask(payload models.ReviewReceivedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReviewReceived, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		// One notification per review even if the enqueue is retried.
		asynq.TaskID("review-received:" + payload.ReviewID),
	}

	return task, opts, nil
}

// ParseReviewReceivedTask decodes the payload of a TypeReviewReceived task.
func ParseReviewReceivedTask(task *asynq.Task) (models.ReviewReceivedPayload, error) {
	var p models.ReviewReceivedPayload
	if task.Type() != TypeReviewReceived {
		return p, fmt.Errorf("unexpected task type %q", task.Type())
	}
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid review received payload: %w", err)
	}
	return p, nil
}
