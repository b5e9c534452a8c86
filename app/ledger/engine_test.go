package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/storage"
)

func newEngine(t *testing.T) (*ledger.Engine, *storage.MemStore) {
	t.Helper()
	st := storage.NewMemStore()
	return ledger.NewEngine(st), st
}

func addInflow(t *testing.T, e *ledger.Engine, id string, amount int64) *models.Inflow {
	t.Helper()
	in := &models.Inflow{
		ID:     id,
		Date:   "2026-08-01",
		Source: "Rock Sale " + id,
		Amount: decimal.NewFromInt(amount),
	}
	if err := e.AddInflow(in); err != nil {
		t.Fatalf("AddInflow(%s) err=%v", id, err)
	}
	return in
}

func outflowDraft(id, inflowID string, amount int64) *models.Outflow {
	return &models.Outflow{
		ID:       id,
		Date:     "2026-08-02",
		Purpose:  "Operational",
		Category: "Office",
		Amount:   decimal.NewFromInt(amount),
		Seller:   "Kigali Hardware",
		InflowID: inflowID,
	}
}

func wantBalance(t *testing.T, e *ledger.Engine, inflowID string, want int64) {
	t.Helper()
	in, err := e.Inflow(inflowID)
	if err != nil {
		t.Fatalf("Inflow(%s) err=%v", inflowID, err)
	}
	if !in.RemainingBalance.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("inflow %s balance=%s want=%d", inflowID, in.RemainingBalance, want)
	}
}

func TestAddInflowStartsFullyAvailable(t *testing.T) {
	e, _ := newEngine(t)
	in := addInflow(t, e, "in1", 1000)
	if !in.RemainingBalance.Equal(in.Amount) {
		t.Fatalf("remainingBalance=%s want=%s", in.RemainingBalance, in.Amount)
	}
	wantBalance(t, e, "in1", 1000)
}

func TestAddInflowValidation(t *testing.T) {
	e, _ := newEngine(t)
	var verr *ledger.ValidationError

	err := e.AddInflow(&models.Inflow{Source: "X", Amount: decimal.Zero})
	if !errors.As(err, &verr) {
		t.Fatalf("zero amount: want ValidationError, got %v", err)
	}
	err = e.AddInflow(&models.Inflow{Amount: decimal.NewFromInt(10)})
	if !errors.As(err, &verr) {
		t.Fatalf("missing source: want ValidationError, got %v", err)
	}
}

func TestRecordOutflowSufficientFunds(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 1000)

	od, err := e.RecordOutflow(outflowDraft("out1", "in1", 800))
	if err != nil {
		t.Fatal(err)
	}
	if od != nil {
		t.Fatalf("no overdraft expected, got %+v", od)
	}
	wantBalance(t, e, "in1", 200)

	overdrafts, _ := e.Overdrafts()
	if len(overdrafts) != 0 {
		t.Fatalf("overdrafts len=%d want=0", len(overdrafts))
	}
}

func TestRecordOutflowExternalizesShortfall(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 1000)

	od, err := e.RecordOutflow(outflowDraft("out1", "in1", 1500))
	if err != nil {
		t.Fatal(err)
	}
	if od == nil {
		t.Fatal("expected an auto-created overdraft")
	}
	if !od.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("overdraft amount=%s want=500", od.Amount)
	}
	if od.Purpose != "Overdraft: Operational" {
		t.Fatalf("overdraft purpose=%q", od.Purpose)
	}
	if od.Notes != "Auto-Overdraft from: Operational (Office)" {
		t.Fatalf("overdraft notes=%q", od.Notes)
	}
	if od.IsSettled {
		t.Fatal("new overdraft must not be settled")
	}

	// Pot floors at zero; the outflow is still recorded in full.
	wantBalance(t, e, "in1", 0)
	out, err := e.Outflow("out1")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("outflow amount=%s want=1500", out.Amount)
	}
}

func TestRecordOutflowMissingInflowIsAtomic(t *testing.T) {
	e, _ := newEngine(t)

	_, err := e.RecordOutflow(outflowDraft("out1", "ghost", 100))
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	outflows, _ := e.Outflows()
	if len(outflows) != 0 {
		t.Fatalf("outflow leaked despite aborted transaction: %d", len(outflows))
	}
}

func TestRecordOutflowValidation(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 1000)
	var verr *ledger.ValidationError

	bad := outflowDraft("o", "in1", 0)
	if _, err := e.RecordOutflow(bad); !errors.As(err, &verr) {
		t.Fatalf("zero amount: want ValidationError, got %v", err)
	}

	bad = outflowDraft("o", "in1", 100)
	bad.Category = "Bribes"
	if _, err := e.RecordOutflow(bad); !errors.As(err, &verr) {
		t.Fatalf("unknown category: want ValidationError, got %v", err)
	}

	bad = outflowDraft("o", "in1", 100)
	bad.Category = "Cost of Goods" // needs an expense name
	if _, err := e.RecordOutflow(bad); !errors.As(err, &verr) {
		t.Fatalf("missing expenseName: want ValidationError, got %v", err)
	}

	// Nothing reached the store.
	outflows, _ := e.Outflows()
	if len(outflows) != 0 {
		t.Fatalf("outflows len=%d want=0", len(outflows))
	}
}

func TestReviseOutflowSameSource(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 1000)
	if _, err := e.RecordOutflow(outflowDraft("out1", "in1", 300)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "in1", 700)

	// Amount grows: balance shrinks by the difference.
	if err := e.ReviseOutflow(outflowDraft("out1", "in1", 500)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "in1", 500)

	// Amount shrinks: balance grows back.
	if err := e.ReviseOutflow(outflowDraft("out1", "in1", 200)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "in1", 800)
}

func TestReviseOutflowCrossSource(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "A", 1000)
	addInflow(t, e, "B", 1000)
	if _, err := e.RecordOutflow(outflowDraft("out1", "A", 100)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "A", 900)

	// Reassign to B with a new amount: A refunded in full, B debited in full.
	if err := e.ReviseOutflow(outflowDraft("out1", "B", 150)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "A", 1000)
	wantBalance(t, e, "B", 850)

	out, _ := e.Outflow("out1")
	if out.InflowID != "B" {
		t.Fatalf("outflow inflowId=%s want=B", out.InflowID)
	}
}

func TestReviseOutflowMissingSourceIsAtomic(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "A", 1000)
	if _, err := e.RecordOutflow(outflowDraft("out1", "A", 100)); err != nil {
		t.Fatal(err)
	}

	err := e.ReviseOutflow(outflowDraft("out1", "ghost", 150))
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// No partial effect: A was not refunded, the outflow is untouched.
	wantBalance(t, e, "A", 900)
	out, _ := e.Outflow("out1")
	if out.InflowID != "A" || !out.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("outflow mutated by failed revision: %+v", out)
	}
}

func TestReviseOutflowNeverCreatesOverdraft(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 100)
	if _, err := e.RecordOutflow(outflowDraft("out1", "in1", 50)); err != nil {
		t.Fatal(err)
	}

	// Revision overdraws the pot: balance goes negative, no overdraft spawns.
	if err := e.ReviseOutflow(outflowDraft("out1", "in1", 200)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "in1", -100)

	overdrafts, _ := e.Overdrafts()
	if len(overdrafts) != 0 {
		t.Fatalf("revision must not create overdrafts, got %d", len(overdrafts))
	}
}

func TestReverseOutflowRefunds(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 500)
	if _, err := e.RecordOutflow(outflowDraft("out1", "in1", 300)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "in1", 200)

	if err := e.ReverseOutflow("out1"); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "in1", 500)

	if _, err := e.Outflow("out1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("outflow should be gone, got %v", err)
	}
}

func TestReverseOutflowMissingInflow(t *testing.T) {
	e, st := newEngine(t)
	addInflow(t, e, "in1", 500)
	if _, err := e.RecordOutflow(outflowDraft("out1", "in1", 300)); err != nil {
		t.Fatal(err)
	}

	// Ghost state: the pot vanished outside the engine's guarded paths.
	err := st.Transact(func(tx ledger.Tx) error { return tx.DeleteInflow("in1") })
	if err != nil {
		t.Fatal(err)
	}

	// Reversal deletes the outflow without a refund and without failing.
	if err := e.ReverseOutflow("out1"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Outflow("out1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("outflow should be gone, got %v", err)
	}
}

func TestReverseOutflowAlreadyGone(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.ReverseOutflow("ghost"); err != nil {
		t.Fatalf("reversing a missing outflow must be a no-op, got %v", err)
	}
}

func TestRecalculateBalanceRepairsDrift(t *testing.T) {
	e, st := newEngine(t)
	addInflow(t, e, "in1", 1000)
	if _, err := e.RecordOutflow(outflowDraft("out1", "in1", 200)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.RecordOutflow(outflowDraft("out2", "in1", 300)); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, e, "in1", 500)

	// Ghost deduction: corrupt the derived balance behind the engine's back.
	err := st.Transact(func(tx ledger.Tx) error {
		return tx.UpdateInflowBalance("in1", decimal.NewFromInt(999))
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := e.RecalculateBalance("in1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("recalculated=%s want=500", got)
	}
	wantBalance(t, e, "in1", 500)
}

func TestRecalculateBalanceIdempotent(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 1000)
	if _, err := e.RecordOutflow(outflowDraft("out1", "in1", 250)); err != nil {
		t.Fatal(err)
	}

	first, err := e.RecalculateBalance("in1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.RecalculateBalance("in1")
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Fatalf("recalculation not idempotent: %s then %s", first, second)
	}
}

func TestDeleteInflowReferentialConstraint(t *testing.T) {
	e, _ := newEngine(t)
	addInflow(t, e, "in1", 1000)
	if _, err := e.RecordOutflow(outflowDraft("out1", "in1", 100)); err != nil {
		t.Fatal(err)
	}

	if err := e.DeleteInflow("in1"); !errors.Is(err, ledger.ErrInflowReferenced) {
		t.Fatalf("want ErrInflowReferenced, got %v", err)
	}

	// Once the outflow is reversed the pot can go.
	if err := e.ReverseOutflow("out1"); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteInflow("in1"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Inflow("in1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("inflow should be gone, got %v", err)
	}
}
