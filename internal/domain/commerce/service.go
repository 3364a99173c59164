// Package commerce holds the MemCommerce resource types, the mappers that validate
// backend JSON into them, and the Service that composes transport and mapping.
package commerce

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/backend"
	"github.com/matiasleandrokruk/memcommerce-mcp/pkg/auth"
)

const (
	pathUserOrders = "/orders/user-orders"
	pathReturns    = "/returns/"
	pathStorefront = "/storefront/all"
)

// Executor performs a single backend request.
type Executor interface {
	Execute(ctx context.Context, req backend.Request) (json.RawMessage, error)
}

// Service calls the MemCommerce API. Errors are returned unchanged: *backend.APIError
// from transport, *ValidationError from mapping.
type Service struct {
	exec    Executor
	baseURL string
}

// NewService creates a Service for the API rooted at baseURL.
func NewService(exec Executor, baseURL string) *Service {
	return &Service{exec: exec, baseURL: strings.TrimRight(baseURL, "/")}
}

// ListUserOrders returns every order placed by the token's user.
func (s *Service) ListUserOrders(ctx context.Context, token string) (*OrderListData, error) {
	raw, err := s.exec.Execute(ctx, backend.Request{
		Method:  backend.MethodGet,
		URL:     s.baseURL + pathUserOrders,
		Headers: auth.BearerHeader(token),
	})
	if err != nil {
		return nil, err
	}
	return MapOrderList(raw)
}

// ListUserReturns returns every return submitted by the token's user.
func (s *Service) ListUserReturns(ctx context.Context, token string) ([]ReturnRecord, error) {
	raw, err := s.exec.Execute(ctx, backend.Request{
		Method:  backend.MethodGet,
		URL:     s.baseURL + pathReturns,
		Headers: auth.BearerHeader(token),
	})
	if err != nil {
		return nil, err
	}
	return MapReturnList(raw)
}

// CreateUserReturn submits a return and returns the stored record.
func (s *Service) CreateUserReturn(ctx context.Context, submission ReturnSubmission, token string) (*ReturnRecord, error) {
	raw, err := s.exec.Execute(ctx, backend.Request{
		Method:  backend.MethodPost,
		URL:     s.baseURL + pathReturns,
		Headers: auth.BearerHeader(token),
		Body:    submission,
	})
	if err != nil {
		return nil, err
	}
	return MapReturnRecord(raw)
}

// ListStorefront returns the public catalog. No credentials are sent.
func (s *Service) ListStorefront(ctx context.Context) (*StorefrontCatalog, error) {
	raw, err := s.exec.Execute(ctx, backend.Request{
		Method: backend.MethodGet,
		URL:    s.baseURL + pathStorefront,
	})
	if err != nil {
		return nil, err
	}
	return MapStorefront(raw)
}
