package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

// Store is the boundary between the engine and the transactional record
// store. List methods return records ordered by date descending (newest
// first). Get methods return ErrNotFound for missing ids.
type Store interface {
	GetInflow(id string) (*models.Inflow, error)
	GetOutflow(id string) (*models.Outflow, error)
	GetOverdraft(id string) (*models.Overdraft, error)

	ListInflows() ([]*models.Inflow, error)
	ListOutflows() ([]*models.Outflow, error)
	ListOverdrafts() ([]*models.Overdraft, error)

	// OutflowsByInflow returns every outflow funded by the given inflow.
	OutflowsByInflow(inflowID string) ([]*models.Outflow, error)

	// Transact runs fn against a transaction handle. Every write made
	// through the handle commits atomically when fn returns nil; any error
	// discards all of them. Reads inside fn observe writes made earlier in
	// the same transaction and lock the rows they touch.
	Transact(fn func(tx Tx) error) error
}

// Tx is the transaction handle handed to Transact callbacks. Set semantics
// are upsert, matching a document store's set-by-id.
type Tx interface {
	GetInflow(id string) (*models.Inflow, error)
	SetInflow(in *models.Inflow) error
	UpdateInflowBalance(id string, balance decimal.Decimal) error
	DeleteInflow(id string) error

	GetOutflow(id string) (*models.Outflow, error)
	SetOutflow(out *models.Outflow) error
	DeleteOutflow(id string) error
	OutflowsByInflow(inflowID string) ([]*models.Outflow, error)
	CountOutflowsByInflow(inflowID string) (int, error)

	GetOverdraft(id string) (*models.Overdraft, error)
	SetOverdraft(od *models.Overdraft) error
	DeleteOverdraft(id string) error
}
