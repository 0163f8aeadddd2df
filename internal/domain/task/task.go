package task

import (
	"encoding/json"
	"fmt"
)

// Task is a payload published to the Redis stream named after its TaskType.
type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// Encode serializes a task into the task_data field of a stream entry.
func Encode(t Task) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", t.TaskType(), err)
	}
	return data, nil
}

// Decode parses task_data into a task of type T, which must be a pointer type.
func Decode[T Task](data []byte) (T, error) {
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to decode %s: %w", t.TaskType(), err)
	}
	return t, nil
}
