package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newJSONRequest builds a request whose body is body encoded as JSON.
func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a JSON response into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

// decodeBOM extracts the "bom" field of a JSON response.
func decodeBOM(t *testing.T, rec *httptest.ResponseRecorder) services.BOM {
	t.Helper()
	var b services.BOM
	if err := json.Unmarshal(decodeBody(t, rec)["bom"], &b); err != nil {
		t.Fatalf("response has no bom: %v\nbody: %s", err, rec.Body.String())
	}
	return b
}

// errorMessage extracts the "error" field of a JSON response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg string
	_ = json.Unmarshal(decodeBody(t, rec)["error"], &msg)
	return msg
}

// handlerBOM is a priced single-category BOM with two lines.
func handlerBOM() services.BOM {
	b, _ := services.Recompute(services.BOM{
		ProjectDetails: services.ProjectDetails{
			TotalArea: 80, NumFloors: 1, AvgFloorHeight: 3, RoomCount: 2, FoundationDepth: 1,
			Location: services.Location{Name: "Metro Manila", Markup: 10},
		},
		Categories: []services.Category{{Category: "Masonry", Materials: []services.LineItem{
			{ID: "line-1", Item: "1.1", Description: "Cement", Unit: "bags", Cost: 100, Quantity: 2},
			{ID: "line-2", Item: "1.2", Description: "Sand", Unit: "cu.m", Cost: 50, Quantity: 3},
		}}},
		OriginalCosts: services.Costs{LaborCost: 1000},
		MarkedUpCosts: services.Costs{LaborCost: 1100},
	})
	return b
}
