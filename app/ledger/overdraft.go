package ledger

import (
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

// SettleExpenseName tags the synthetic outflow a settlement produces. The
// deletion refund path matches on it, so it must stay stable.
const SettleExpenseName = "Overdraft Settle"

// Settlement is the result of paying down an overdraft.
type Settlement struct {
	PaymentAmount decimal.Decimal   `json:"paymentAmount"`
	Outflow       *models.Outflow   `json:"outflow"`
	Overdraft     *models.Overdraft `json:"overdraft"`
}

// AddOverdraft logs an ad-hoc external liability. No pot is touched.
func (e *Engine) AddOverdraft(od *models.Overdraft) error {
	if !od.Amount.IsPositive() {
		return validationErr("amount", "must be greater than zero")
	}
	if od.Purpose == "" {
		return validationErr("purpose", "is required")
	}
	if od.Seller == "" {
		return validationErr("seller", "is required")
	}
	if od.ID == "" {
		od.ID = e.newID()
	}
	if od.Date == "" {
		od.Date = e.now().Format(dateLayout)
	}
	if od.CreatedAt == "" {
		od.CreatedAt = e.now().UTC().Format(time.RFC3339)
	}
	od.IsSettled = false
	od.SettledWithInflowID = ""

	return e.store.Transact(func(tx Tx) error {
		return tx.SetOverdraft(od)
	})
}

// UpdateOverdraft persists metadata edits on a liability. Settlement state
// is owned by SettleOverdraft and is not writable here.
func (e *Engine) UpdateOverdraft(od *models.Overdraft) error {
	if od.ID == "" {
		return validationErr("id", "is required")
	}
	return e.store.Transact(func(tx Tx) error {
		current, err := tx.GetOverdraft(od.ID)
		if err != nil {
			return err
		}
		od.IsSettled = current.IsSettled
		od.SettledWithInflowID = current.SettledWithInflowID
		return tx.SetOverdraft(od)
	})
}

// SettleOverdraft pays a liability down from a chosen pot's spare balance.
// paymentAmount = min(outstanding debt, pot balance). The pot is debited, a
// synthetic outflow documents the payment in the unified ledger, and the
// overdraft's outstanding amount shrinks; when it reaches zero the record
// flips to settled (amount kept at 0 as a visual clearance). A pot with no
// positive balance is rejected before any write. All three writes commit as
// one transaction.
func (e *Engine) SettleOverdraft(overdraftID, inflowID string) (*Settlement, error) {
	if overdraftID == "" {
		return nil, validationErr("overdraftId", "is required")
	}
	if inflowID == "" {
		return nil, validationErr("inflowId", "is required")
	}

	var result *Settlement
	err := e.store.Transact(func(tx Tx) error {
		od, err := tx.GetOverdraft(overdraftID)
		if err != nil {
			return err
		}
		if od.IsSettled || !od.Amount.IsPositive() {
			return ErrAlreadySettled
		}

		inf, err := tx.GetInflow(inflowID)
		if err != nil {
			return err
		}
		maxPayable := inf.RemainingBalance
		if !maxPayable.IsPositive() {
			return ErrInsufficientFunds
		}

		paymentAmount := decimal.Min(od.Amount, maxPayable)

		if err := tx.UpdateInflowBalance(inf.ID, inf.RemainingBalance.Sub(paymentAmount)); err != nil {
			return err
		}

		purpose := "Settle: " + od.Purpose
		if paymentAmount.LessThan(od.Amount) {
			purpose = "Partial Settle: " + od.Purpose
		}
		payment := &models.Outflow{
			ID:          e.newID(),
			Date:        e.now().Format(dateLayout),
			Purpose:     purpose,
			Category:    "Misc",
			Amount:      paymentAmount,
			Seller:      od.Seller,
			InflowID:    inflowID,
			ExpenseName: SettleExpenseName,
		}
		if err := tx.SetOutflow(payment); err != nil {
			return err
		}

		remainingDebt := od.Amount.Sub(paymentAmount)
		if remainingDebt.IsPositive() {
			od.Amount = remainingDebt
		} else {
			od.Amount = decimal.Zero
			od.IsSettled = true
			od.SettledWithInflowID = inflowID
		}
		if err := tx.SetOverdraft(od); err != nil {
			return err
		}

		result = &Settlement{PaymentAmount: paymentAmount, Outflow: payment, Overdraft: od}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteOverdraft removes a liability record. A settled overdraft first has
// its settlement payments reversed: the synthetic outflows are located by
// paying pot, seller and settlement tag, and each refund is applied before
// the record goes. Finding no matching payment is logged as a discrepancy,
// not an error. An unsettled overdraft is deleted with no balance effects.
func (e *Engine) DeleteOverdraft(id string) error {
	return e.store.Transact(func(tx Tx) error {
		od, err := tx.GetOverdraft(id)
		if err != nil {
			return err
		}

		if od.IsSettled && od.SettledWithInflowID != "" {
			outs, err := tx.OutflowsByInflow(od.SettledWithInflowID)
			if err != nil {
				return err
			}
			matched := false
			for _, out := range outs {
				if out.Seller != od.Seller || out.ExpenseName != SettleExpenseName {
					continue
				}
				matched = true
				inf, err := tx.GetInflow(out.InflowID)
				switch {
				case err == nil:
					if err := tx.UpdateInflowBalance(inf.ID, inf.RemainingBalance.Add(out.Amount)); err != nil {
						return err
					}
				case errors.Is(err, ErrNotFound):
					log.Printf("delete overdraft %s: paying inflow %s is gone, skipping refund", id, out.InflowID)
				default:
					return err
				}
				if err := tx.DeleteOutflow(out.ID); err != nil {
					return err
				}
			}
			if !matched {
				log.Printf("delete overdraft %s: no settlement payment found to refund", id)
			}
		}

		return tx.DeleteOverdraft(id)
	})
}
