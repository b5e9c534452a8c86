package ledger

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

const dateLayout = "2006-01-02"

// Engine keeps every inflow's remaining balance consistent with the set of
// outflows referencing it, and manages overdraft liabilities. All mutations
// run as single store transactions: either every write lands or none does.
type Engine struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Read-side passthroughs for handlers.

func (e *Engine) Inflow(id string) (*models.Inflow, error)       { return e.store.GetInflow(id) }
func (e *Engine) Outflow(id string) (*models.Outflow, error)     { return e.store.GetOutflow(id) }
func (e *Engine) Overdraft(id string) (*models.Overdraft, error) { return e.store.GetOverdraft(id) }

func (e *Engine) Inflows() ([]*models.Inflow, error)       { return e.store.ListInflows() }
func (e *Engine) Outflows() ([]*models.Outflow, error)     { return e.store.ListOutflows() }
func (e *Engine) Overdrafts() ([]*models.Overdraft, error) { return e.store.ListOverdrafts() }

// AddInflow records a receipt of funds. The pot starts with its full
// principal available: remainingBalance = amount.
func (e *Engine) AddInflow(in *models.Inflow) error {
	if !in.Amount.IsPositive() {
		return validationErr("amount", "must be greater than zero")
	}
	if in.Source == "" {
		return validationErr("source", "is required")
	}
	if in.ID == "" {
		in.ID = e.newID()
	}
	if in.Date == "" {
		in.Date = e.now().Format(dateLayout)
	}
	in.RemainingBalance = in.Amount

	return e.store.Transact(func(tx Tx) error {
		return tx.SetInflow(in)
	})
}

// UpdateInflow persists the inflow as given, including its balance. A
// principal edit does not re-derive remainingBalance; RecalculateBalance is
// the repair tool for that.
func (e *Engine) UpdateInflow(in *models.Inflow) error {
	if in.ID == "" {
		return validationErr("id", "is required")
	}
	if !in.Amount.IsPositive() {
		return validationErr("amount", "must be greater than zero")
	}
	return e.store.Transact(func(tx Tx) error {
		if _, err := tx.GetInflow(in.ID); err != nil {
			return err
		}
		return tx.SetInflow(in)
	})
}

// DeleteInflow removes a pot. The referential constraint lives here, not in
// the database: a pot with outflows still tracing to it cannot be deleted.
func (e *Engine) DeleteInflow(id string) error {
	return e.store.Transact(func(tx Tx) error {
		if _, err := tx.GetInflow(id); err != nil {
			return err
		}
		n, err := tx.CountOutflowsByInflow(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrInflowReferenced
		}
		return tx.DeleteInflow(id)
	})
}

// RecordOutflow debits out.Amount from the source pot and stores the
// outflow, atomically. When the pot cannot cover the full amount its
// balance is floored at zero and the shortfall is externalized as an
// auto-created overdraft annotated with the outflow's purpose and category.
// The outflow itself is always recorded at its full requested amount.
// Returns the created overdraft, or nil when funds sufficed.
func (e *Engine) RecordOutflow(out *models.Outflow) (*models.Overdraft, error) {
	if err := validateOutflow(out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out.ID = e.newID()
	}
	if out.Date == "" {
		out.Date = e.now().Format(dateLayout)
	}

	var created *models.Overdraft
	err := e.store.Transact(func(tx Tx) error {
		inf, err := tx.GetInflow(out.InflowID)
		if err != nil {
			return err
		}

		newBalance := inf.RemainingBalance.Sub(out.Amount)
		if newBalance.IsNegative() {
			od := &models.Overdraft{
				ID:        e.newID(),
				Amount:    newBalance.Neg(),
				Date:      out.Date,
				Seller:    out.Seller,
				Purpose:   "Overdraft: " + out.Purpose,
				Notes:     fmt.Sprintf("Auto-Overdraft from: %s (%s)", out.Purpose, out.Category),
				IsSettled: false,
				CreatedAt: e.now().UTC().Format(time.RFC3339),
			}
			if err := tx.SetOverdraft(od); err != nil {
				return err
			}
			created = od
			newBalance = decimal.Zero
		}

		if err := tx.UpdateInflowBalance(inf.ID, newBalance); err != nil {
			return err
		}
		return tx.SetOutflow(out)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReviseOutflow re-balances the ledger for an edited outflow. Same source:
// the pot absorbs the difference between old and new amounts. Different
// source: the old pot is refunded in full and the new pot debited in full,
// both inside one transaction; if either pot is missing the revision fails
// with no partial effect.
//
// Unlike RecordOutflow, this path never spawns an overdraft: a revision
// that overdraws the pot leaves its balance negative. That asymmetry is the
// ledger's documented behavior, with RecalculateBalance as the repair tool.
func (e *Engine) ReviseOutflow(updated *models.Outflow) error {
	if updated.ID == "" {
		return validationErr("id", "is required")
	}
	if err := validateOutflow(updated); err != nil {
		return err
	}

	return e.store.Transact(func(tx Tx) error {
		old, err := tx.GetOutflow(updated.ID)
		if err != nil {
			return err
		}

		if old.InflowID != updated.InflowID {
			oldInf, err := tx.GetInflow(old.InflowID)
			if err != nil {
				return err
			}
			newInf, err := tx.GetInflow(updated.InflowID)
			if err != nil {
				return err
			}
			if err := tx.UpdateInflowBalance(oldInf.ID, oldInf.RemainingBalance.Add(old.Amount)); err != nil {
				return err
			}
			if err := tx.UpdateInflowBalance(newInf.ID, newInf.RemainingBalance.Sub(updated.Amount)); err != nil {
				return err
			}
		} else {
			inf, err := tx.GetInflow(old.InflowID)
			if err != nil {
				return err
			}
			// Old 100 -> new 150: correction -50, balance drops. Old 100 ->
			// new 50: correction +50, balance grows.
			correction := old.Amount.Sub(updated.Amount)
			if err := tx.UpdateInflowBalance(inf.ID, inf.RemainingBalance.Add(correction)); err != nil {
				return err
			}
		}

		return tx.SetOutflow(updated)
	})
}

// ReverseOutflow refunds the outflow's amount back onto its source pot and
// deletes the record. A missing outflow is treated as already reversed. A
// missing source pot is logged and the outflow deleted without a refund.
func (e *Engine) ReverseOutflow(id string) error {
	return e.store.Transact(func(tx Tx) error {
		out, err := tx.GetOutflow(id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		inf, err := tx.GetInflow(out.InflowID)
		switch {
		case err == nil:
			if err := tx.UpdateInflowBalance(inf.ID, inf.RemainingBalance.Add(out.Amount)); err != nil {
				return err
			}
		case errors.Is(err, ErrNotFound):
			log.Printf("reverse outflow %s: source inflow %s is gone, deleting without refund", id, out.InflowID)
		default:
			return err
		}

		return tx.DeleteOutflow(id)
	})
}

// RecalculateBalance rebuilds a pot's remaining balance from scratch:
// remainingBalance = amount - sum of every outflow referencing the pot.
// This is the authoritative repair for drift from manual edits or from the
// revision path's documented overdraw. Idempotent.
func (e *Engine) RecalculateBalance(inflowID string) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	err := e.store.Transact(func(tx Tx) error {
		inf, err := tx.GetInflow(inflowID)
		if err != nil {
			return err
		}
		outs, err := tx.OutflowsByInflow(inflowID)
		if err != nil {
			return err
		}
		totalOut := decimal.Zero
		for _, o := range outs {
			totalOut = totalOut.Add(o.Amount)
		}
		newBalance = inf.Amount.Sub(totalOut)
		return tx.UpdateInflowBalance(inflowID, newBalance)
	})
	return newBalance, err
}

func validateOutflow(out *models.Outflow) error {
	if !out.Amount.IsPositive() {
		return validationErr("amount", "must be greater than zero")
	}
	if out.InflowID == "" {
		return validationErr("inflowId", "is required")
	}
	if out.Purpose == "" {
		return validationErr("purpose", "is required")
	}
	if out.Seller == "" {
		return validationErr("seller", "is required")
	}
	if !models.ValidOutflowCategory(out.Category) {
		return validationErr("category", "is not a known expense category")
	}
	if models.CategoryNeedsDetail(out.Category) && out.ExpenseName == "" {
		return validationErr("expenseName", "is required for this category")
	}
	return nil
}
