package cron

import (
	"context"
	"time"

	"reviewdesk/config"
	"reviewdesk/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReviewTaskHandler processes review notification tasks.
type ReviewTaskHandler interface {
	HandleReviewReceivedTask(ctx context.Context, task *asynq.Task) error
}

// RedisOpt returns the asynq connection settings for the notification queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyQueueDB,
	}
}

// NewServeMux routes queued task types to their handlers.
func NewServeMux(handler ReviewTaskHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReviewReceived, handler.HandleReviewReceivedTask)
	return mux
}

// InitNotificationWorker runs the async worker in background. The returned server must be
// shut down by the caller.
func InitNotificationWorker(handler ReviewTaskHandler, logger *zap.Logger) *asynq.Server {
	concurrency := config.AppConfig.NotifyWorkerCount
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Warn("Notification task failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)

	mux := NewServeMux(handler)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting notification worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Warn("Failed to start notification worker",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Error("Notification worker gave up; review pushes will stay queued")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
				continue
			}
			return
		}
	}()

	return srv
}
