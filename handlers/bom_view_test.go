package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bomestimator/testhelpers"
)

func TestHandleBOMView_WithBOM(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "View <Me>")
	testhelpers.SaveTestBOM(t, app, proj.Id, handlerBOM())

	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id+"/bom", nil)
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()

	if err := HandleBOMView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"<!DOCTYPE html>",
		"View &lt;Me&gt;",
		"Masonry",
		"1.2",
		"PHP 350.00",
		"PHP 1,485.00",
		"Markup (10%)",
		"/bom/export/pdf?version=contractor",
	)
	if strings.Contains(body, "View <Me>") {
		t.Error("project name was not escaped")
	}
}

func TestHandleBOMView_EmptyState(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Fresh")

	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id+"/bom", nil)
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()

	if err := HandleBOMView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Fresh", "No bill of materials")
}

func TestHandleBOMView_HTMXPartial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Partial")
	testhelpers.SaveTestBOM(t, app, proj.Id, handlerBOM())

	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id+"/bom", nil)
	req.SetPathValue("id", proj.Id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := HandleBOMView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX request should get a partial")
	}
	testhelpers.AssertHTMLContains(t, body, "Partial", "Cost Summary")
}

func TestHandleBOMView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/nonexistent/bom", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	if err := HandleBOMView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
