package queue

import (
	"context"
	"fmt"

	"catalog/loader/internal/domain"
	"catalog/loader/internal/domain/task"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type Queue interface {
	AddTask(ctx context.Context, task task.Task) (string, error) // Returns message ID
	ListTasks(ctx context.Context, taskType string, count int64) ([]redis.XMessage, error)
}

type RedisQueue struct {
	redisClient  *redis.Client
	streamPrefix string
	maxLen       int64
}

func NewRedisQueue(redisClient *redis.Client) Queue {
	return &RedisQueue{
		redisClient:  redisClient,
		streamPrefix: "catalog:stream:",
		maxLen:       10000,
	}
}

func (q *RedisQueue) StreamName(taskType string) string {
	return q.streamPrefix + taskType
}

func (q *RedisQueue) AddTask(ctx context.Context, task task.Task) (string, error) {
	taskType := task.TaskType()
	streamName := q.StreamName(taskType)

	taskValue, err := task.TaskValue()
	if err != nil {
		return "", fmt.Errorf("failed to serialize task: %w", err)
	}

	// Fields: task_type, task_data
	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		MaxLen: q.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"task_type": taskType,
			"task_data": string(taskValue),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add task to Redis stream %s: %w", streamName, err)
	}

	log.Debugf("Added task %s to stream %s with message ID: %s", taskType, streamName, messageID)
	return messageID, nil
}

// ListTasks returns the newest count messages of a task stream, newest first.
func (q *RedisQueue) ListTasks(ctx context.Context, taskType string, count int64) ([]redis.XMessage, error) {
	streamName := q.StreamName(taskType)
	messages, err := q.redisClient.XRevRangeN(ctx, streamName, "+", "-", count).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read Redis stream %s: %w", streamName, err)
	}
	return messages, nil
}

// PublishFailures pushes one FailedRowTask per failed row of the report.
func PublishFailures(ctx context.Context, q Queue, report *domain.ImportReport) (int, error) {
	published := 0
	for _, row := range report.Failures() {
		_, err := q.AddTask(ctx, &task.FailedRowTask{
			RunID:    report.RunID.String(),
			Row:      row.Row,
			SKU:      row.SKU,
			Name:     row.Name,
			Error:    row.Reason,
			FailedAt: report.FinishedAt,
		})
		if err != nil {
			return published, err
		}
		published++
	}
	if published > 0 {
		log.Infof("📮 Published %d failed rows to %s", published, "catalog:stream:FailedRowTask")
	}
	return published, nil
}

// DecodeFailedRow extracts the FailedRowTask carried by a stream message.
func DecodeFailedRow(msg redis.XMessage) (*task.FailedRowTask, error) {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok || taskType != (&task.FailedRowTask{}).TaskType() {
		return nil, fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	failedRow, err := task.Decode[*task.FailedRowTask]([]byte(taskData))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal failed row task: %w", err)
	}
	return failedRow, nil
}
