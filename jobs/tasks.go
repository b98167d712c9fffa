// Package jobs runs the background work of the ledger: nightly integrity
// verification of approved vouchers and low-stock scanning.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity verifies that every tenant's approved ledger closes.
	TaskLedgerIntegrity = "ledger:integrity"
	// TaskLowStockScan flags products under their minimum.
	TaskLowStockScan = "inventory:low_stock"
)

// LedgerIntegrityPayload scopes the integrity check. A zero TenantID means
// all tenants.
type LedgerIntegrityPayload struct {
	TenantID int64 `json:"tenant_id"`
}

// NewLedgerIntegrityTask constructs the integrity task.
func NewLedgerIntegrityTask(payload LedgerIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, data), nil
}

// LowStockPayload scopes the low-stock scan. A zero TenantID means all
// tenants.
type LowStockPayload struct {
	TenantID int64 `json:"tenant_id"`
}

// NewLowStockTask constructs the low-stock task.
func NewLowStockTask(payload LowStockPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}
