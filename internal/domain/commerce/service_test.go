package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/backend"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.NewClient(5*time.Second, logr.Discard(), nil)
	// Trailing slash exercises base URL normalization.
	return NewService(client, srv.URL+"/"), srv
}

func TestService_ListUserOrders_SendsBearerAndMaps(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/orders/user-orders" {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer jwt-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte("[" + orderDataJSON("o1", "user@example.com", orderItemJSON("i1", "")) + "]")) //nolint:errcheck
	})

	got, err := svc.ListUserOrders(context.Background(), "jwt-1")
	if err != nil {
		t.Fatalf("ListUserOrders failed: %v", err)
	}
	if len(got.Data) != 1 || got.Data[0].Order.ID != "o1" {
		t.Errorf("unexpected orders: %+v", got.Data)
	}
	if got.Data[0].OrderItems[0].Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", got.Data[0].OrderItems[0].Quantity)
	}
}

func TestService_ListUserOrders_StatusErrorPropagates(t *testing.T) {
	t.Parallel()

	svc, srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found")) //nolint:errcheck
	})

	_, err := svc.ListUserOrders(context.Background(), "jwt-1")
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *backend.APIError, got %T: %v", err, err)
	}
	want := "API error 404 at " + srv.URL + "/orders/user-orders: not found"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestService_ListUserOrders_ShapeViolationPropagates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[" + orderDataJSON("o1", "not-an-email") + "]")) //nolint:errcheck
	})

	_, err := svc.ListUserOrders(context.Background(), "jwt-1")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
}

func TestService_ListUserReturns(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/returns/" {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer jwt-2" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte("[" + returnRecordJSON + "]")) //nolint:errcheck
	})

	got, err := svc.ListUserReturns(context.Background(), "jwt-2")
	if err != nil {
		t.Fatalf("ListUserReturns failed: %v", err)
	}
	if len(got) != 1 || len(got[0].Items) != 2 {
		t.Errorf("unexpected returns: %+v", got)
	}
}

func TestService_CreateUserReturn_PostsSubmissionAndKeepsItemOrder(t *testing.T) {
	t.Parallel()

	var posted ReturnSubmission
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/returns/" {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Echo the submission back as a stored record.
		rec := ReturnRecord{
			ReturnRequest: ReturnRequest{ReturnRequestCore: posted.ReturnRequest.ReturnRequestCore, ID: "r9", UserID: "u1"},
		}
		for i, item := range posted.Items {
			rec.Items = append(rec.Items, ReturnItem{
				ReturnItemCore: item.ReturnItemCore,
				ID:             "ri" + string(rune('a'+i)),
				ReturnID:       "r9",
			})
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rec) //nolint:errcheck
	})

	sub := ReturnSubmission{
		ReturnRequest: ReturnRequestCreate{ReturnRequestCore{Status: "pending", Reason: "damaged", OrderID: "o1"}},
		Items: []ReturnItemCreate{
			{ReturnItemCore{Quantity: 1, OrderItemID: "first"}},
			{ReturnItemCore{Quantity: 3, OrderItemID: "second"}},
		},
	}

	got, err := svc.CreateUserReturn(context.Background(), sub, "jwt-3")
	if err != nil {
		t.Fatalf("CreateUserReturn failed: %v", err)
	}
	if posted.ReturnRequest.OrderID != "o1" || len(posted.Items) != 2 {
		t.Errorf("backend received unexpected submission: %+v", posted)
	}
	if got.ReturnRequest.ID != "r9" {
		t.Errorf("expected return id r9, got %q", got.ReturnRequest.ID)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].OrderItemID != "first" || got.Items[1].OrderItemID != "second" {
		t.Errorf("items out of order: %+v", got.Items)
	}
	if got.Items[1].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", got.Items[1].Quantity)
	}
}

func TestService_ListStorefront_SendsNoAuth(t *testing.T) {
	t.Parallel()

	var gotAuth string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/storefront/all" {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"products": []}`)) //nolint:errcheck
	})

	got, err := svc.ListStorefront(context.Background())
	if err != nil {
		t.Fatalf("ListStorefront failed: %v", err)
	}
	if len(got.Products) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(got.Products))
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

type recordingExecutor struct {
	req backend.Request
}

func (e *recordingExecutor) Execute(_ context.Context, req backend.Request) (json.RawMessage, error) {
	e.req = req
	return json.RawMessage(`{"products": []}`), nil
}

func TestNewService_TrimsTrailingSlashes(t *testing.T) {
	t.Parallel()

	exec := &recordingExecutor{}
	svc := NewService(exec, "http://localhost:8001//")
	if _, err := svc.ListStorefront(context.Background()); err != nil {
		t.Fatalf("ListStorefront failed: %v", err)
	}
	if exec.req.URL != "http://localhost:8001/storefront/all" {
		t.Errorf("unexpected URL %q", exec.req.URL)
	}
	if exec.req.Method != backend.MethodGet {
		t.Errorf("expected GET, got %s", exec.req.Method)
	}
}
