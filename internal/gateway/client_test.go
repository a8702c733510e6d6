package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestItemsByAdmin(t *testing.T) {
	var gotPath, gotReqID string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"name":"Widget","price":10.5,"quantity":4,"warehouses":[{"warehouseName":"North"}]},
			{"id":2,"name":"Gadget","description":"spare","price":3,"quantity":0}
		]`))
	})
	defer srv.Close()

	items, err := client.ItemsByAdmin(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("ItemsByAdmin: %v", err)
	}
	if gotPath != "/api/items/admin/admin-1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReqID == "" {
		t.Error("request ID header not set")
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Price != 10.5 || items[0].Warehouses[0].WarehouseName != "North" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Description != "spare" {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestSearchItemsEncodesQuery(t *testing.T) {
	var gotPath, gotQuery string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	items, err := client.SearchItems(context.Background(), "admin 1", "blue widget")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
	if gotPath != "/api/items/search/admin%201" && gotPath != "/api/items/search/admin 1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "blue widget" {
		t.Errorf("q = %q, want %q", gotQuery, "blue widget")
	}
}

func TestExportsDecodesRecords(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":9,"item":{"id":1,"name":"Widget"},"date":"2026-02-01","documentNumber":"EXP-9",
			 "customerName":"Acme","quantityOrdered":5,"quantityBilled":5,"quantityShipped":3,"status":"Pending"}
		]`))
	})
	defer srv.Close()

	records, err := client.Exports(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("Exports: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Item.ID != 1 || rec.QuantityShipped != 3 || rec.Status != "Pending" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestNonSuccessReturnsEmptyAndError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	defer srv.Close()

	records, err := client.Imports(context.Background(), "admin-1")
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0 on error", len(records))
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusBadGateway {
		t.Errorf("Code = %d, want %d", statusErr.Code, http.StatusBadGateway)
	}
}

func TestTransportFailureReturnsEmptyAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	client := NewClient(srv.URL, time.Second)
	items, err := client.ItemsByAdmin(context.Background(), "admin-1")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}
