package dashboard

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/config"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

var hundred = decimal.NewFromInt(100)

func percentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1)
}

// monthOf extracts YYYY-MM from a YYYY-MM-DD date string.
func monthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// GetStatsAPI aggregates the whole ledger plus month-over-month metrics for
// the overview screen.
func GetStatsAPI(c *fiber.Ctx) error {
	engine := config.GetEngine()

	inflows, err := engine.Inflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inflows", "details": err.Error()})
	}
	outflows, err := engine.Outflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load outflows", "details": err.Error()})
	}
	overdrafts, err := engine.Overdrafts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load overdrafts", "details": err.Error()})
	}

	now := time.Now()
	thisMonth := now.Format("2006-01")
	lastMonth := now.AddDate(0, -1, 0).Format("2006-01")

	stats := &models.DashboardStats{
		TotalInflow:          decimal.Zero,
		TotalOutflow:         decimal.Zero,
		AvailableBalance:     decimal.Zero,
		OutstandingOverdraft: decimal.Zero,
	}
	var inCur, inPrev, outCur, outPrev decimal.Decimal

	for _, in := range inflows {
		stats.TotalInflow = stats.TotalInflow.Add(in.Amount)
		stats.AvailableBalance = stats.AvailableBalance.Add(in.RemainingBalance)
		switch monthOf(in.Date) {
		case thisMonth:
			inCur = inCur.Add(in.Amount)
		case lastMonth:
			inPrev = inPrev.Add(in.Amount)
		}
	}
	for _, out := range outflows {
		stats.TotalOutflow = stats.TotalOutflow.Add(out.Amount)
		switch monthOf(out.Date) {
		case thisMonth:
			outCur = outCur.Add(out.Amount)
		case lastMonth:
			outPrev = outPrev.Add(out.Amount)
		}
	}
	for _, od := range overdrafts {
		if od.IsSettled {
			continue
		}
		stats.OutstandingOverdraft = stats.OutstandingOverdraft.Add(od.Amount)
		stats.ActiveOverdrafts++
	}
	stats.NetPosition = stats.TotalInflow.Sub(stats.TotalOutflow)

	stats.Metrics = []models.FinancialMetric{
		{Label: "Revenue", Current: inCur, Previous: inPrev, Change: percentChange(inCur, inPrev)},
		{Label: "Spending", Current: outCur, Previous: outPrev, Change: percentChange(outCur, outPrev)},
		{Label: "Net Flow", Current: inCur.Sub(outCur), Previous: inPrev.Sub(outPrev), Change: percentChange(inCur.Sub(outCur), inPrev.Sub(outPrev))},
	}

	return c.JSON(stats)
}

// GetLedgerAPI flattens inflows, outflows and overdrafts into one unified,
// date-sorted stream.
func GetLedgerAPI(c *fiber.Ctx) error {
	engine := config.GetEngine()

	inflows, err := engine.Inflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inflows", "details": err.Error()})
	}
	outflows, err := engine.Outflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load outflows", "details": err.Error()})
	}
	overdrafts, err := engine.Overdrafts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load overdrafts", "details": err.Error()})
	}

	entries := make([]models.LedgerEntry, 0, len(inflows)+len(outflows)+len(overdrafts))
	for _, in := range inflows {
		entries = append(entries, models.LedgerEntry{
			Type: models.EntryInflow, ID: in.ID, Date: in.Date,
			Label: in.Source, Detail: in.Product, Amount: in.Amount,
		})
	}
	for _, out := range outflows {
		detail := out.Purpose
		if out.ExpenseName != "" {
			detail = out.ExpenseName + " | " + out.Purpose
		}
		entries = append(entries, models.LedgerEntry{
			Type: models.EntryOutflow, ID: out.ID, Date: out.Date,
			Label: out.Seller, Detail: detail, Amount: out.Amount.Neg(),
		})
	}
	for _, od := range overdrafts {
		entries = append(entries, models.LedgerEntry{
			Type: models.EntryOverdraft, ID: od.ID, Date: od.Date,
			Label: od.Seller, Detail: od.Purpose, Amount: od.Amount.Neg(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].ID < entries[j].ID
	})

	return c.JSON(entries)
}

// GetCalendarAPI returns per-day inflow/outflow totals for one YYYY-MM month.
func GetCalendarAPI(c *fiber.Ctx) error {
	month := c.Params("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "month must be YYYY-MM"})
	}

	engine := config.GetEngine()
	inflows, err := engine.Inflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inflows", "details": err.Error()})
	}
	outflows, err := engine.Outflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load outflows", "details": err.Error()})
	}

	days := map[string]*models.CalendarDay{}
	day := func(date string) *models.CalendarDay {
		d, ok := days[date]
		if !ok {
			d = &models.CalendarDay{Date: date, Inflow: decimal.Zero, Outflow: decimal.Zero}
			days[date] = d
		}
		return d
	}

	for _, in := range inflows {
		if monthOf(in.Date) == month {
			d := day(in.Date)
			d.Inflow = d.Inflow.Add(in.Amount)
		}
	}
	for _, out := range outflows {
		if monthOf(out.Date) == month {
			d := day(out.Date)
			d.Outflow = d.Outflow.Add(out.Amount)
		}
	}

	list := make([]*models.CalendarDay, 0, len(days))
	for _, d := range days {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })

	return c.JSON(list)
}

// GetAccountsAPI rolls the ledger up by payment channel: inflows keyed by
// bank account name when present, otherwise by payment method.
func GetAccountsAPI(c *fiber.Ctx) error {
	engine := config.GetEngine()
	inflows, err := engine.Inflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inflows", "details": err.Error()})
	}
	outflows, err := engine.Outflows()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load outflows", "details": err.Error()})
	}

	accounts := map[string]*models.AccountSummary{}
	account := func(name, method string) *models.AccountSummary {
		key := name
		if key == "" {
			key = method
		}
		if key == "" {
			key = "Unspecified"
		}
		a, ok := accounts[key]
		if !ok {
			a = &models.AccountSummary{
				BankAccountName: name, PaymentMethod: method,
				TotalIn: decimal.Zero, TotalOut: decimal.Zero,
			}
			accounts[key] = a
		}
		return a
	}

	for _, in := range inflows {
		a := account(in.BankAccountName, in.PaymentMethod)
		a.TotalIn = a.TotalIn.Add(in.Amount)
		a.Transactions++
	}
	for _, out := range outflows {
		a := account("", out.PaymentMethod)
		a.TotalOut = a.TotalOut.Add(out.Amount)
		a.Transactions++
	}

	list := make([]*models.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		a.Balance = a.TotalIn.Sub(a.TotalOut)
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].TotalIn.GreaterThan(list[j].TotalIn)
	})

	return c.JSON(list)
}
