package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bomestimator/testhelpers"
)

func TestHandleProjectBOMSave_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Save Me")

	b := handlerBOM()
	b.OriginalCosts.TotalProjectCost = 1 // stale, must be recomputed

	req := newJSONRequest(t, http.MethodPost, "/api/projects/"+proj.Id+"/boms", map[string]any{"bom": b})
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()

	if err := HandleProjectBOMSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeBOM(t, rec).OriginalCosts.TotalProjectCost; got != 1350 {
		t.Errorf("saved total = %v, want 1350", got)
	}

	rec = httptest.NewRecorder()
	getReq := httptest.NewRequest(http.MethodGet, "/api/projects/"+proj.Id+"/bom", nil)
	getReq.SetPathValue("id", proj.Id)
	if err := HandleProjectBOMGet(app)(newTestRequestEvent(app, getReq, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeBOM(t, rec).MarkedUpCosts.TotalProjectCost; got != 1485 {
		t.Errorf("stored marked-up total = %v, want 1485", got)
	}
}

func TestHandleProjectBOMSave_UnknownProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newJSONRequest(t, http.MethodPost, "/api/projects/missing/boms", map[string]any{"bom": handlerBOM()})
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	if err := HandleProjectBOMSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleProjectBOMSave_MissingID(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newJSONRequest(t, http.MethodPost, "/api/projects//boms", map[string]any{"bom": handlerBOM()})
	rec := httptest.NewRecorder()

	if err := HandleProjectBOMSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProjectBOMGet_NoBOM(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Empty")

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+proj.Id+"/bom", nil)
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()

	if err := HandleProjectBOMGet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
