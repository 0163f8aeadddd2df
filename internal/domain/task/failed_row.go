package task

import "time"

// FailedRowTask is published for every row that could not be reconciled.
type FailedRowTask struct {
	RunID    string    `json:"run_id"`
	Row      int       `json:"row"`
	SKU      string    `json:"sku"`
	Name     string    `json:"name"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

func (t *FailedRowTask) TaskType() string {
	return "FailedRowTask"
}

func (t *FailedRowTask) TaskValue() ([]byte, error) {
	return Encode(t)
}
