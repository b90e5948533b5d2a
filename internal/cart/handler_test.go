package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupCartRouter(t *testing.T) (*gin.Engine, *Service, *Broker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, broker := newTestService(t)
	h := NewHandler(service)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})
	r.GET("/cart", h.Get)
	r.POST("/cart/items", h.Add)
	r.PATCH("/cart/items/:dishId", h.UpdateQuantity)
	r.DELETE("/cart/items/:dishId", h.Remove)
	r.DELETE("/cart", h.Clear)
	r.GET("/cart/events", h.Events)
	return r, service, broker
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartHandlers(t *testing.T) {
	r, _, _ := setupCartRouter(t)

	w := doJSON(r, http.MethodPost, "/cart/items", `{"dishId":"1","quantity":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/cart/items", `{"dishId":"2"}`)
	var resp cartResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 3 || resp.Subtotal != 95000 {
		t.Fatalf("unexpected cart %+v", resp)
	}

	w = doJSON(r, http.MethodPatch, "/cart/items/1", `{"quantity":0}`)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 {
		t.Fatalf("expected count 2 after clamp, got %d", resp.Count)
	}

	w = doJSON(r, http.MethodDelete, "/cart/items/2", "")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 line, got %+v", resp.Items)
	}

	w = doJSON(r, http.MethodDelete, "/cart", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/cart", "")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Fatalf("expected empty items array, got %s", w.Body.String())
	}
}

func TestAddHandler_Errors(t *testing.T) {
	r, _, _ := setupCartRouter(t)

	if w := doJSON(r, http.MethodPost, "/cart/items", `{"dishId":"404"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/cart/items", `{"dishId":"3"}`); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/cart/items", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEventsHandler_StreamsSnapshotAndChanges(t *testing.T) {
	r, service, broker := setupCartRouter(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/cart/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for broker.Subscribers("u1") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := service.Add(context.Background(), "u1", "1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// give the stream a moment to write the event before disconnecting
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after client disconnect")
	}

	body := w.Body.String()
	if strings.Count(body, "event:cart") != 2 {
		t.Fatalf("expected snapshot and one change event, got:\n%s", body)
	}
	if !strings.Contains(body, `"count":2`) {
		t.Fatalf("expected change event with count 2, got:\n%s", body)
	}
	if broker.Subscribers("u1") != 0 {
		t.Fatal("subscription leaked after disconnect")
	}
}
