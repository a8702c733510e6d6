package web

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wareroom/stockview/internal/config"
	"github.com/wareroom/stockview/internal/gateway"
	"github.com/wareroom/stockview/internal/session"
)

// stubSessions resolves any non-empty token to a fixed admin session.
type stubSessions struct{}

func (stubSessions) Current(_ context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, session.ErrUnauthenticated
	}
	return &session.Session{UserID: "admin-1", AdminID: "admin-1"}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Auth.CookieName = "sv_access_token"
	return cfg
}

// newTestServer wires a Server against a fake backend handler.
func newTestServer(t *testing.T, backendHandler http.HandlerFunc) *Server {
	t.Helper()
	backend := httptest.NewServer(backendHandler)
	t.Cleanup(backend.Close)
	return NewServer(gateway.NewClient(backend.URL, 5*time.Second), stubSessions{}, testConfig())
}

func doRequest(s *Server, method, target string, authenticated bool, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if authenticated {
		req.AddCookie(&http.Cookie{Name: "sv_access_token", Value: "tok"})
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestPagesRequireSession(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend reached without a session")
	})

	for _, target := range []string{"/", "/products", "/records", "/records/imports.docx"} {
		rec := doRequest(s, http.MethodGet, target, false, nil)
		if rec.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", target, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: redirect = %q, want /login", target, loc)
		}
	}
}

func TestHealthzIsPublic(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := doRequest(s, http.MethodGet, "/healthz", false, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestReportPage(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/items/admin/admin-1":
			w.Write([]byte(`[{"id":1,"name":"Widget","price":10,"quantity":4}]`))
		case "/api/admins/admin-1/exports":
			w.Write([]byte(`[
				{"id":1,"item":{"id":1},"quantityShipped":3,"status":"Pending"},
				{"id":2,"item":{"id":2},"quantityShipped":5,"status":"Shipped"}
			]`))
		default:
			t.Errorf("unexpected backend path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	rec := doRequest(s, http.MethodGet, "/", true, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Total Products", "₹30.00", ">8<", ">1<"} {
		if !strings.Contains(body, want) {
			t.Errorf("report page missing %q", want)
		}
	}
	if strings.Contains(body, "Could not load report data") {
		t.Error("notice shown despite successful fetches")
	}
}

func TestReportPageBackendDown(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	rec := doRequest(s, http.MethodGet, "/", true, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with empty-state fallback", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Could not load report data") {
		t.Error("missing failure notice")
	}
	if !strings.Contains(body, "₹0.00") {
		t.Error("counters not rendered from empty collections")
	}
}

func TestProductsSearch(t *testing.T) {
	var gotQuery string
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/items/search/") {
			t.Errorf("unexpected backend path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[{"id":2,"name":"Blue Widget","price":7,"quantity":1}]`))
	})

	rec := doRequest(s, http.MethodGet, "/products?q=blue", true, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotQuery != "blue" {
		t.Errorf("backend query = %q, want %q", gotQuery, "blue")
	}
	if !strings.Contains(rec.Body.String(), "Blue Widget") {
		t.Error("search result not rendered")
	}
}

func TestRecordsPageEmptyCollections(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	rec := doRequest(s, http.MethodGet, "/records", true, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "No Import records found.") {
		t.Error("imports placeholder missing")
	}
	if !strings.Contains(body, "No Export records found.") {
		t.Error("exports placeholder missing")
	}
}

func TestDownloadImports(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admins/admin-1/imports" {
			t.Errorf("unexpected backend path %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id":4,"item":{"id":1,"name":"Widget"},"date":"2026-01-15","documentNumber":"IMP-4",
			 "vendorName":"Acme","quantityOrdered":10,"quantityBilled":10,"quantityReceived":8,"status":"Partial"}
		]`))
	})

	rec := doRequest(s, http.MethodGet, "/records/imports.docx", true, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != docxContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="imports.docx"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	payload := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("payload is not a zip: %v", err)
	}
	var doc string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document part: %v", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read document part: %v", err)
		}
		doc = string(data)
	}
	if doc == "" {
		t.Fatal("document part missing")
	}
	for _, want := range []string{">Import Records</w:t>", ">IMP-4</w:t>", ">Acme</w:t>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %s", want)
		}
	}
}

func TestDownloadFailsWhenBackendDown(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	header := http.Header{"Accept": []string{"application/json"}}
	rec := doRequest(s, http.MethodGet, "/records/exports.docx", true, header)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "BE002") {
		t.Errorf("error body missing support code: %s", rec.Body.String())
	}
}
