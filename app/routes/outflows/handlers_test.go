package outflows

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/config"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/auth"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/storage"
)

func setupApp(t *testing.T) (*fiber.App, *ledger.Engine) {
	t.Helper()
	engine := ledger.NewEngine(storage.NewMemStore())
	config.SetEngine(engine)

	app := fiber.New()
	SetupOutflowsRoutes(app, nil) // nil notifier drops alerts
	return app, engine
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateJWT("u1", "admin@byose.rw", "Admin", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func request(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func seedInflow(t *testing.T, engine *ledger.Engine, id string, amount int64) {
	t.Helper()
	err := engine.AddInflow(&models.Inflow{
		ID: id, Date: "2026-08-01", Source: "Trimming contract",
		Amount: decimal.NewFromInt(amount),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreateOutflowRequiresAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp := request(t, app, "POST", "/api/outflows", "", `{}`)
	if resp.StatusCode != 401 {
		t.Fatalf("status=%d want=401", resp.StatusCode)
	}
}

func TestCreateOutflowRejectsViewers(t *testing.T) {
	app, _ := setupApp(t)
	token, err := auth.GenerateJWT("u2", "viewer@byose.rw", "Viewer", models.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}

	resp := request(t, app, "POST", "/api/outflows", token, `{}`)
	if resp.StatusCode != 403 {
		t.Fatalf("status=%d want=403", resp.StatusCode)
	}
}

func TestCreateOutflowDebitsPot(t *testing.T) {
	app, engine := setupApp(t)
	seedInflow(t, engine, "in1", 1000)

	body := `{"date":"2026-08-10","purpose":"Operational","category":"Office",
	          "amount":800,"seller":"Kigali Hardware","inflowId":"in1"}`
	resp := request(t, app, "POST", "/api/outflows", adminToken(t), body)
	if resp.StatusCode != 201 {
		t.Fatalf("status=%d want=201", resp.StatusCode)
	}

	var result struct {
		Outflow   models.Outflow    `json:"outflow"`
		Overdraft *models.Overdraft `json:"overdraft"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Overdraft != nil {
		t.Fatalf("no overdraft expected: %+v", result.Overdraft)
	}

	in, _ := engine.Inflow("in1")
	if !in.RemainingBalance.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("balance=%s want=200", in.RemainingBalance)
	}
}

func TestCreateOutflowReturnsOverdraft(t *testing.T) {
	app, engine := setupApp(t)
	seedInflow(t, engine, "in1", 1000)

	body := `{"date":"2026-08-10","purpose":"Operational","category":"Office",
	          "amount":1500,"seller":"Kigali Hardware","inflowId":"in1"}`
	resp := request(t, app, "POST", "/api/outflows", adminToken(t), body)
	if resp.StatusCode != 201 {
		t.Fatalf("status=%d want=201", resp.StatusCode)
	}

	var result struct {
		Overdraft *models.Overdraft `json:"overdraft"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Overdraft == nil {
		t.Fatal("expected overdraft in response")
	}
	if !result.Overdraft.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("overdraft amount=%s want=500", result.Overdraft.Amount)
	}
}

func TestCreateOutflowMissingPot(t *testing.T) {
	app, _ := setupApp(t)

	body := `{"purpose":"Operational","category":"Office","amount":100,
	          "seller":"Kigali Hardware","inflowId":"ghost"}`
	resp := request(t, app, "POST", "/api/outflows", adminToken(t), body)
	if resp.StatusCode != 404 {
		t.Fatalf("status=%d want=404", resp.StatusCode)
	}
}

func TestCreateOutflowValidation(t *testing.T) {
	app, engine := setupApp(t)
	seedInflow(t, engine, "in1", 1000)

	body := `{"purpose":"Operational","category":"Office","amount":-5,
	          "seller":"Kigali Hardware","inflowId":"in1"}`
	resp := request(t, app, "POST", "/api/outflows", adminToken(t), body)
	if resp.StatusCode != 400 {
		t.Fatalf("status=%d want=400", resp.StatusCode)
	}
}

func TestDeleteOutflowRefunds(t *testing.T) {
	app, engine := setupApp(t)
	seedInflow(t, engine, "in1", 500)
	if _, err := engine.RecordOutflow(&models.Outflow{
		ID: "out1", Date: "2026-08-02", Purpose: "Operational", Category: "Office",
		Amount: decimal.NewFromInt(300), Seller: "Kigali Hardware", InflowID: "in1",
	}); err != nil {
		t.Fatal(err)
	}

	resp := request(t, app, "DELETE", "/api/outflows/out1", adminToken(t), "")
	if resp.StatusCode != 204 {
		t.Fatalf("status=%d want=204", resp.StatusCode)
	}

	in, _ := engine.Inflow("in1")
	if !in.RemainingBalance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance=%s want=500", in.RemainingBalance)
	}
}
