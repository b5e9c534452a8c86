package storage

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

func inflow(id, date string, amount int64) *models.Inflow {
	d := decimal.NewFromInt(amount)
	return &models.Inflow{ID: id, Date: date, Source: "src-" + id, Amount: d, RemainingBalance: d}
}

func TestTransactCommit(t *testing.T) {
	m := NewMemStore()
	err := m.Transact(func(tx ledger.Tx) error {
		return tx.SetInflow(inflow("a", "2026-08-01", 100))
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.GetInflow("a"); err != nil {
		t.Fatalf("committed record missing: %v", err)
	}
}

func TestTransactRollbackDiscardsEverything(t *testing.T) {
	m := NewMemStore()
	if err := m.Transact(func(tx ledger.Tx) error {
		return tx.SetInflow(inflow("a", "2026-08-01", 100))
	}); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := m.Transact(func(tx ledger.Tx) error {
		if err := tx.UpdateInflowBalance("a", decimal.NewFromInt(1)); err != nil {
			return err
		}
		if err := tx.SetOutflow(&models.Outflow{ID: "o1", InflowID: "a"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	in, _ := m.GetInflow("a")
	if !in.RemainingBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance mutated by aborted tx: %s", in.RemainingBalance)
	}
	if _, err := m.GetOutflow("o1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("outflow leaked from aborted tx: %v", err)
	}
}

func TestTxReadsItsOwnWrites(t *testing.T) {
	m := NewMemStore()
	if err := m.Transact(func(tx ledger.Tx) error {
		return tx.SetInflow(inflow("a", "2026-08-01", 100))
	}); err != nil {
		t.Fatal(err)
	}

	err := m.Transact(func(tx ledger.Tx) error {
		if err := tx.UpdateInflowBalance("a", decimal.NewFromInt(40)); err != nil {
			return err
		}
		in, err := tx.GetInflow("a")
		if err != nil {
			return err
		}
		if !in.RemainingBalance.Equal(decimal.NewFromInt(40)) {
			t.Fatalf("tx read stale balance: %s", in.RemainingBalance)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	m := NewMemStore()
	if err := m.Transact(func(tx ledger.Tx) error {
		return tx.SetInflow(inflow("a", "2026-08-01", 100))
	}); err != nil {
		t.Fatal(err)
	}

	first, _ := m.GetInflow("a")
	first.RemainingBalance = decimal.NewFromInt(-999)
	first.Source = "tampered"

	second, _ := m.GetInflow("a")
	if second.Source == "tampered" || !second.RemainingBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("store state reachable through returned pointer: %+v", second)
	}
}

func TestListsAreNewestFirst(t *testing.T) {
	m := NewMemStore()
	err := m.Transact(func(tx ledger.Tx) error {
		for _, in := range []*models.Inflow{
			inflow("a", "2026-08-01", 1),
			inflow("b", "2026-08-15", 2),
			inflow("c", "2026-07-30", 3),
		} {
			if err := tx.SetInflow(in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	list, err := m.ListInflows()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, in := range list {
		got = append(got, in.ID)
	}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v want=%v", got, want)
		}
	}
}

func TestOutflowsByInflowFilters(t *testing.T) {
	m := NewMemStore()
	err := m.Transact(func(tx ledger.Tx) error {
		for _, out := range []*models.Outflow{
			{ID: "o1", Date: "2026-08-01", InflowID: "a"},
			{ID: "o2", Date: "2026-08-02", InflowID: "b"},
			{ID: "o3", Date: "2026-08-03", InflowID: "a"},
		} {
			if err := tx.SetOutflow(out); err != nil {
				return err
			}
		}
		n, err := tx.CountOutflowsByInflow("a")
		if err != nil {
			return err
		}
		if n != 2 {
			t.Fatalf("count=%d want=2", n)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	outs, err := m.OutflowsByInflow("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 2 {
		t.Fatalf("len=%d want=2", len(outs))
	}
}
