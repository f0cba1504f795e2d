package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/carrito/user-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": 1, "product_id": 7, "quantity": 2, "unit_price": 19.99},
			},
			"total": 39.98,
		})
	}))
	defer srv.Close()

	view, err := New(srv.URL, "tok").FetchCart("user-1")
	if err != nil {
		t.Fatalf("FetchCart: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != 7 {
		t.Errorf("unexpected items: %+v", view.Items)
	}
	if view.Total != 39.98 {
		t.Errorf("total = %v, want 39.98", view.Total)
	}
}

func TestFetchCartNeverCartedIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}, "total": 0})
	}))
	defer srv.Close()

	view, err := New(srv.URL, "tok").FetchCart("user-without-cart")
	if err != nil {
		t.Fatalf("FetchCart: %v", err)
	}
	if len(view.Items) != 0 || view.Total != 0 {
		t.Errorf("expected empty view, got %+v", view)
	}
}

func TestCanonicalMutationShapes(t *testing.T) {
	type seen struct {
		method, path string
		body         map[string]interface{}
	}
	var requests []seen

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		requests = append(requests, seen{r.Method, r.URL.Path, body})
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if _, err := c.AddItem(AddItemRequest{ProductID: 7, Quantity: 2, Size: "M", Color: "rojo"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.UpdateQuantity("user-1", 4, 3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if _, err := c.RemoveItem(4); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := c.ClearCart("user-1"); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}

	want := []struct {
		method, path string
	}{
		{http.MethodPost, "/carrito/add"},
		{http.MethodPut, "/carrito/user-1/actualizar/4"},
		{http.MethodDelete, "/carrito/item/4"},
		{http.MethodDelete, "/carrito/clear/user-1"},
	}
	if len(requests) != len(want) {
		t.Fatalf("got %d requests, want %d", len(requests), len(want))
	}
	for i, w := range want {
		if requests[i].method != w.method || requests[i].path != w.path {
			t.Errorf("request %d = %s %s, want %s %s", i, requests[i].method, requests[i].path, w.method, w.path)
		}
	}

	if qty, ok := requests[1].body["quantity"].(float64); !ok || qty != 3 {
		t.Errorf("update body quantity = %v, want 3", requests[1].body["quantity"])
	}
}

func TestErrorStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Cart item not found"})
	}))
	defer srv.Close()

	if err := New(srv.URL, "tok").UpdateQuantity("user-1", 99, 2); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}
