package models

import "github.com/shopspring/decimal"

// FinancialMetric is a month-over-month comparison line for the dashboard.
type FinancialMetric struct {
	Label    string          `json:"label"`
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Change   decimal.Decimal `json:"change"` // percent, 0 when previous is 0
}

// DashboardStats aggregates the whole ledger for the overview screen.
type DashboardStats struct {
	TotalInflow          decimal.Decimal   `json:"totalInflow"`
	TotalOutflow         decimal.Decimal   `json:"totalOutflow"`
	NetPosition          decimal.Decimal   `json:"netPosition"`
	AvailableBalance     decimal.Decimal   `json:"availableBalance"`
	OutstandingOverdraft decimal.Decimal   `json:"outstandingOverdraft"`
	ActiveOverdrafts     int               `json:"activeOverdrafts"`
	Metrics              []FinancialMetric `json:"metrics"`
}

// Ledger entry kinds for the unified ledger view.
const (
	EntryInflow    = "INFLOW"
	EntryOutflow   = "OUTFLOW"
	EntryOverdraft = "OVERDRAFT"
)

// LedgerEntry is one row of the unified ledger: every inflow, outflow and
// overdraft flattened into a single date-sorted stream.
type LedgerEntry struct {
	Type   string          `json:"type"`
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Label  string          `json:"label"`
	Detail string          `json:"detail,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// CalendarDay carries the per-day totals for the calendar view.
type CalendarDay struct {
	Date    string          `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// AccountSummary rolls the ledger up by payment channel.
type AccountSummary struct {
	BankAccountName string          `json:"bankAccountName"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalIn         decimal.Decimal `json:"totalIn"`
	TotalOut        decimal.Decimal `json:"totalOut"`
	Balance         decimal.Decimal `json:"balance"`
	Transactions    int             `json:"transactions"`
}
