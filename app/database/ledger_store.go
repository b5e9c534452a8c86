package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

// LedgerStore is the Postgres implementation of ledger.Store. Reads inside
// a transaction use SELECT ... FOR UPDATE so concurrent mutations of the
// same pot serialize on the row lock; the database's own concurrency
// control surfaces conflicts, which map to ledger.ErrTxConflict.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 40: serialization failures and deadlocks. Retryable by the
		// caller, never retried here.
		if pqErr.Code.Class() == "40" {
			return ledger.ErrTxConflict
		}
	}
	return err
}

func (s *LedgerStore) Transact(fn func(tx ledger.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return mapErr(err)
	}
	defer tx.Rollback()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return mapErr(err)
	}
	return mapErr(tx.Commit())
}

const inflowColumns = `id, date, source, product, amount, remaining_balance,
	description, payment_method, account_number, notes, currency, bank_account_name`

func scanInflow(row interface{ Scan(...interface{}) error }) (*models.Inflow, error) {
	in := &models.Inflow{}
	var date time.Time
	err := row.Scan(&in.ID, &date, &in.Source, &in.Product, &in.Amount,
		&in.RemainingBalance, &in.Description, &in.PaymentMethod,
		&in.AccountNumber, &in.Notes, &in.Currency, &in.BankAccountName)
	if err != nil {
		return nil, mapErr(err)
	}
	in.Date = date.Format("2006-01-02")
	return in, nil
}

func getInflow(q queryable, id string, lock bool) (*models.Inflow, error) {
	query := `SELECT ` + inflowColumns + ` FROM inflows WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	return scanInflow(q.QueryRow(query, id))
}

func setInflow(q queryable, in *models.Inflow) error {
	query := `INSERT INTO inflows (` + inflowColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          ON CONFLICT (id) DO UPDATE SET
	            date = EXCLUDED.date, source = EXCLUDED.source,
	            product = EXCLUDED.product, amount = EXCLUDED.amount,
	            remaining_balance = EXCLUDED.remaining_balance,
	            description = EXCLUDED.description,
	            payment_method = EXCLUDED.payment_method,
	            account_number = EXCLUDED.account_number,
	            notes = EXCLUDED.notes, currency = EXCLUDED.currency,
	            bank_account_name = EXCLUDED.bank_account_name,
	            updated_at = NOW()`
	_, err := q.Exec(query, in.ID, in.Date, in.Source, in.Product, in.Amount,
		in.RemainingBalance, in.Description, in.PaymentMethod,
		in.AccountNumber, in.Notes, in.Currency, in.BankAccountName)
	return mapErr(err)
}

const outflowColumns = `id, date, purpose, category, amount, seller,
	inflow_id, expense_name, notes, payment_method, account_number`

func scanOutflow(row interface{ Scan(...interface{}) error }) (*models.Outflow, error) {
	out := &models.Outflow{}
	var date time.Time
	err := row.Scan(&out.ID, &date, &out.Purpose, &out.Category, &out.Amount,
		&out.Seller, &out.InflowID, &out.ExpenseName, &out.Notes,
		&out.PaymentMethod, &out.AccountNumber)
	if err != nil {
		return nil, mapErr(err)
	}
	out.Date = date.Format("2006-01-02")
	return out, nil
}

func getOutflow(q queryable, id string, lock bool) (*models.Outflow, error) {
	query := `SELECT ` + outflowColumns + ` FROM outflows WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	return scanOutflow(q.QueryRow(query, id))
}

func setOutflow(q queryable, out *models.Outflow) error {
	query := `INSERT INTO outflows (` + outflowColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (id) DO UPDATE SET
	            date = EXCLUDED.date, purpose = EXCLUDED.purpose,
	            category = EXCLUDED.category, amount = EXCLUDED.amount,
	            seller = EXCLUDED.seller, inflow_id = EXCLUDED.inflow_id,
	            expense_name = EXCLUDED.expense_name, notes = EXCLUDED.notes,
	            payment_method = EXCLUDED.payment_method,
	            account_number = EXCLUDED.account_number`
	_, err := q.Exec(query, out.ID, out.Date, out.Purpose, out.Category,
		out.Amount, out.Seller, out.InflowID, out.ExpenseName, out.Notes,
		out.PaymentMethod, out.AccountNumber)
	return mapErr(err)
}

func queryOutflows(q queryable, query string, args ...interface{}) ([]*models.Outflow, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	outflows := []*models.Outflow{}
	for rows.Next() {
		out, err := scanOutflow(rows)
		if err != nil {
			return nil, err
		}
		outflows = append(outflows, out)
	}
	return outflows, mapErr(rows.Err())
}

const overdraftColumns = `id, date, purpose, amount, seller, is_settled,
	settled_with_inflow_id, notes, created_at`

func scanOverdraft(row interface{ Scan(...interface{}) error }) (*models.Overdraft, error) {
	od := &models.Overdraft{}
	var date, createdAt time.Time
	err := row.Scan(&od.ID, &date, &od.Purpose, &od.Amount, &od.Seller,
		&od.IsSettled, &od.SettledWithInflowID, &od.Notes, &createdAt)
	if err != nil {
		return nil, mapErr(err)
	}
	od.Date = date.Format("2006-01-02")
	od.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return od, nil
}

func getOverdraft(q queryable, id string, lock bool) (*models.Overdraft, error) {
	query := `SELECT ` + overdraftColumns + ` FROM overdrafts WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	return scanOverdraft(q.QueryRow(query, id))
}

func setOverdraft(q queryable, od *models.Overdraft) error {
	createdAt := od.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	query := `INSERT INTO overdrafts (` + overdraftColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (id) DO UPDATE SET
	            date = EXCLUDED.date, purpose = EXCLUDED.purpose,
	            amount = EXCLUDED.amount, seller = EXCLUDED.seller,
	            is_settled = EXCLUDED.is_settled,
	            settled_with_inflow_id = EXCLUDED.settled_with_inflow_id,
	            notes = EXCLUDED.notes`
	_, err := q.Exec(query, od.ID, od.Date, od.Purpose, od.Amount, od.Seller,
		od.IsSettled, od.SettledWithInflowID, od.Notes, createdAt)
	return mapErr(err)
}

// Non-transactional reads.

func (s *LedgerStore) GetInflow(id string) (*models.Inflow, error) {
	return getInflow(s.db, id, false)
}

func (s *LedgerStore) GetOutflow(id string) (*models.Outflow, error) {
	return getOutflow(s.db, id, false)
}

func (s *LedgerStore) GetOverdraft(id string) (*models.Overdraft, error) {
	return getOverdraft(s.db, id, false)
}

func (s *LedgerStore) ListInflows() ([]*models.Inflow, error) {
	rows, err := s.db.Query(`SELECT ` + inflowColumns + ` FROM inflows ORDER BY date DESC, id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	inflows := []*models.Inflow{}
	for rows.Next() {
		in, err := scanInflow(rows)
		if err != nil {
			return nil, err
		}
		inflows = append(inflows, in)
	}
	return inflows, mapErr(rows.Err())
}

func (s *LedgerStore) ListOutflows() ([]*models.Outflow, error) {
	return queryOutflows(s.db, `SELECT `+outflowColumns+` FROM outflows ORDER BY date DESC, id`)
}

func (s *LedgerStore) ListOverdrafts() ([]*models.Overdraft, error) {
	rows, err := s.db.Query(`SELECT ` + overdraftColumns + ` FROM overdrafts ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	overdrafts := []*models.Overdraft{}
	for rows.Next() {
		od, err := scanOverdraft(rows)
		if err != nil {
			return nil, err
		}
		overdrafts = append(overdrafts, od)
	}
	return overdrafts, mapErr(rows.Err())
}

func (s *LedgerStore) OutflowsByInflow(inflowID string) ([]*models.Outflow, error) {
	return queryOutflows(s.db,
		`SELECT `+outflowColumns+` FROM outflows WHERE inflow_id = $1 ORDER BY date DESC, id`, inflowID)
}

// pgTx implements ledger.Tx over *sql.Tx.
type pgTx struct {
	tx *sql.Tx
}

func (t *pgTx) GetInflow(id string) (*models.Inflow, error) {
	return getInflow(t.tx, id, true)
}

func (t *pgTx) SetInflow(in *models.Inflow) error {
	return setInflow(t.tx, in)
}

func (t *pgTx) UpdateInflowBalance(id string, balance decimal.Decimal) error {
	res, err := t.tx.Exec(`UPDATE inflows SET remaining_balance = $1, updated_at = NOW() WHERE id = $2`, balance, id)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr(err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (t *pgTx) DeleteInflow(id string) error {
	_, err := t.tx.Exec(`DELETE FROM inflows WHERE id = $1`, id)
	return mapErr(err)
}

func (t *pgTx) GetOutflow(id string) (*models.Outflow, error) {
	return getOutflow(t.tx, id, true)
}

func (t *pgTx) SetOutflow(out *models.Outflow) error {
	return setOutflow(t.tx, out)
}

func (t *pgTx) DeleteOutflow(id string) error {
	_, err := t.tx.Exec(`DELETE FROM outflows WHERE id = $1`, id)
	return mapErr(err)
}

func (t *pgTx) OutflowsByInflow(inflowID string) ([]*models.Outflow, error) {
	return queryOutflows(t.tx,
		`SELECT `+outflowColumns+` FROM outflows WHERE inflow_id = $1 ORDER BY id FOR UPDATE`, inflowID)
}

func (t *pgTx) CountOutflowsByInflow(inflowID string) (int, error) {
	var n int
	err := t.tx.QueryRow(`SELECT COUNT(*) FROM outflows WHERE inflow_id = $1`, inflowID).Scan(&n)
	return n, mapErr(err)
}

func (t *pgTx) GetOverdraft(id string) (*models.Overdraft, error) {
	return getOverdraft(t.tx, id, true)
}

func (t *pgTx) SetOverdraft(od *models.Overdraft) error {
	return setOverdraft(t.tx, od)
}

func (t *pgTx) DeleteOverdraft(id string) error {
	_, err := t.tx.Exec(`DELETE FROM overdrafts WHERE id = $1`, id)
	return mapErr(err)
}
