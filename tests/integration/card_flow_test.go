package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestCardFlow_CreateTrackAndSummarize(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "cards@test.com", "password123")

	// Step 1: Create a card with a 300000 paise milestone
	cardID := app.createCard(t, token, int(time.Now().Month()), 300000)

	// Step 2: List cards
	rec := app.request("GET", "/api/v1/cards", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list cards failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 card, got %d", len(data))
	}

	// Step 3: Record this month's spend
	month := time.Now().Format("2006-01")
	body := fmt.Sprintf(`{"month":%q,"amount_spent":120000}`, month)
	rec = app.request("PUT", "/api/v1/cards/"+cardID+"/spends", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert spend failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 4: Replace the same month's spend
	body = fmt.Sprintf(`{"month":%q,"amount_spent":150000}`, month)
	rec = app.request("PUT", "/api/v1/cards/"+cardID+"/spends", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("second upsert failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 5: Cycle summary reflects the replaced amount
	rec = app.request("GET", "/api/v1/cards/"+cardID+"/cycle", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("cycle summary failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	summary := result["summary"].(map[string]interface{})
	if summary["spent"].(float64) != 150000 {
		t.Errorf("expected spent 150000, got %v", summary["spent"])
	}
	if summary["remaining"].(float64) != 150000 {
		t.Errorf("expected remaining 150000, got %v", summary["remaining"])
	}
	if summary["progress"].(float64) != 50 {
		t.Errorf("expected progress 50, got %v", summary["progress"])
	}

	// Step 6: List spends in the current cycle
	rec = app.request("GET", "/api/v1/cards/"+cardID+"/spends", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list spends failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	spends := result["spends"].([]interface{})
	if len(spends) != 1 {
		t.Fatalf("expected 1 spend, got %d", len(spends))
	}

	// Step 7: Dashboard summary across all cards
	rec = app.request("GET", "/api/v1/cards/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard summary failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	dashboard := result["summary"].(map[string]interface{})
	if dashboard["total_milestone"].(float64) != 300000 {
		t.Errorf("expected total_milestone 300000, got %v", dashboard["total_milestone"])
	}
	if dashboard["total_spent"].(float64) != 150000 {
		t.Errorf("expected total_spent 150000, got %v", dashboard["total_spent"])
	}
}

func TestCardFlow_SpendOutsideCycleRejected(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "outside@test.com", "password123")

	cardID := app.createCard(t, token, int(time.Now().Month()), 300000)

	// A month years in the past cannot fall in the current cycle window
	rec := app.request("PUT", "/api/v1/cards/"+cardID+"/spends",
		`{"month":"2019-07","amount_spent":5000}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "SPEND_MONTH_OUTSIDE_CYCLE" {
		t.Errorf("expected SPEND_MONTH_OUTSIDE_CYCLE, got %v", errObj["code"])
	}
}

func TestCardFlow_DeleteCardRemovesSpends(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "delete@test.com", "password123")

	cardID := app.createCard(t, token, int(time.Now().Month()), 300000)

	month := time.Now().Format("2006-01")
	body := fmt.Sprintf(`{"month":%q,"amount_spent":120000}`, month)
	rec := app.request("PUT", "/api/v1/cards/"+cardID+"/spends", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert spend failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", "/api/v1/cards/"+cardID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete card failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/cards/"+cardID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCardFlow_UserIsolation(t *testing.T) {
	app := setupApp(t)
	ownerToken, _, _ := app.registerUser(t, "owner@test.com", "password123")
	otherToken, _, _ := app.registerUser(t, "other@test.com", "password123")

	cardID := app.createCard(t, ownerToken, int(time.Now().Month()), 300000)

	rec := app.request("GET", "/api/v1/cards/"+cardID, "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's card, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "CARD_NOT_FOUND" {
		t.Errorf("expected CARD_NOT_FOUND, got %v", errObj["code"])
	}
}
