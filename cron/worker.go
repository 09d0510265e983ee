package cron

import (
	"context"
	"fmt"
	"time"

	"beautyboosters/config"
	"beautyboosters/models"
	"beautyboosters/services/tasks"
	"beautyboosters/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReassignmentSender delivers the booster notice for a moved job.
type ReassignmentSender interface {
	SendReassignmentNotice(ctx context.Context, p models.ReassignmentPayload) error
}

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitScheduleWorker runs the async worker in background. The returned server is
// shut down by the caller.
func InitScheduleWorker(ctx context.Context, sender ReassignmentSender) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScheduleReassigned, HandleReassignmentTask(sender, logger))

	go monitorQueueConnection(ctx, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("[ScheduleWorker] Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("[ScheduleWorker] Failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[ScheduleWorker] Max retry attempts reached, reassignment notices are disabled")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// HandleReassignmentTask sends the push notice for a schedule:reassigned task.
func HandleReassignmentTask(sender ReassignmentSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReassignmentTask(task)
		if err != nil {
			logger.Error("[ReassignmentHandler] Invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Info("[ReassignmentHandler] Notifying booster",
			zap.String("boosterId", p.BoosterID),
			zap.String("jobId", p.JobID),
			zap.String("date", p.Date))

		if err := sender.SendReassignmentNotice(ctx, p); err != nil {
			logger.Warn("[ReassignmentHandler] Failed to send notification", zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorQueueConnection pings the queue Redis periodically to detect failures at runtime.
func monitorQueueConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("[ScheduleWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
