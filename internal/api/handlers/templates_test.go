package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/navassist/nav-reconciler/internal/api/handlers"
	"github.com/navassist/nav-reconciler/internal/api/request"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/testutil"
)

func TestTemplateHandler_Save(t *testing.T) {
	t.Run("stores template", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/template",
			request.SaveTemplateRequest{
				Name:      "rayan",
				Tolerance: 3.0,
				SelectorFields: request.SelectorFields{
					NavPriceSelector: "#nav-price",
				},
			}, nil)
		w := httptest.NewRecorder()

		handler.Save(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing name rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/template",
			request.SaveTemplateRequest{Tolerance: 3.0}, nil)
		w := httptest.NewRecorder()

		handler.Save(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("second save replaces by name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		for _, tolerance := range []float64{2.0, 5.0} {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/api/template",
				request.SaveTemplateRequest{Name: "rayan", Tolerance: tolerance}, nil)
			w := httptest.NewRecorder()
			handler.Save(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
		}

		getReq := testutil.NewRequestWithURLParams(http.MethodGet, "/api/template/rayan",
			map[string]string{"name": "rayan"})
		w := httptest.NewRecorder()
		handler.Template(w, getReq)

		var tmpl model.Template
		testutil.DecodeJSONResponse(t, w, &tmpl)
		if tmpl.Tolerance != 5.0 {
			t.Errorf("Expected last tolerance 5.0 to win, got %f", tmpl.Tolerance)
		}
	})
}

func TestTemplateHandler_Templates(t *testing.T) {
	t.Run("returns all templates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		testutil.NewTemplate("rayan").Build(t, db)
		testutil.NewTemplate("other").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/template", nil)
		w := httptest.NewRecorder()

		handler.Templates(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var templates []model.Template
		testutil.DecodeJSONResponse(t, w, &templates)

		if len(templates) != 2 {
			t.Errorf("Expected 2 templates, got %d", len(templates))
		}
	})
}

func TestTemplateHandler_Template(t *testing.T) {
	t.Run("unknown template returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/template/missing",
			map[string]string{"name": "missing"})
		w := httptest.NewRecorder()

		handler.Template(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestTemplateHandler_Apply(t *testing.T) {
	t.Run("copies template into fund configuration", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		testutil.NewTemplate("rayan").WithTolerance(2.5).Build(t, db)
		fund := testutil.CreateFund(t, db, "Growth Fund")

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/template/rayan/apply/Growth Fund",
			map[string]string{"name": "rayan", "fundName": "Growth Fund"})
		w := httptest.NewRecorder()

		handler.Apply(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var tolerance float64
		if err := db.QueryRow("SELECT tolerance FROM configuration WHERE fund_id = ?", fund.ID).Scan(&tolerance); err != nil {
			t.Fatalf("Configuration row query failed: %v", err)
		}
		if tolerance != 2.5 {
			t.Errorf("Expected copied tolerance 2.5, got %f", tolerance)
		}
	})

	t.Run("unknown fund returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		testutil.NewTemplate("rayan").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/template/rayan/apply/Nope",
			map[string]string{"name": "rayan", "fundName": "Nope"})
		w := httptest.NewRecorder()

		handler.Apply(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("unknown template returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestConfigurationService(t, db)
		handler := handlers.NewTemplateHandler(cs)

		testutil.CreateFund(t, db, "Growth Fund")

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/template/missing/apply/Growth Fund",
			map[string]string{"name": "missing", "fundName": "Growth Fund"})
		w := httptest.NewRecorder()

		handler.Apply(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
