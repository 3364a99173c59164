package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matiasleandrokruk/memcommerce-mcp/internal/domain/commerce"
)

// APIErrorPrefix starts the text of every failed MemCommerce call.
const APIErrorPrefix = "MemCommerce API Error: "

var ErrServiceNotConfigured = errors.New("commerce service not configured")

type userTokenParams struct {
	UserJWT string `json:"user_jwt"`
}

type createUserReturnParams struct {
	Data    commerce.ReturnSubmission `json:"data"`
	UserJWT string                    `json:"user_jwt"`
}

type ListUserOrdersExecutor struct{ api CommerceAPI }

func NewListUserOrdersExecutor(api CommerceAPI) ToolExecutor {
	return &ListUserOrdersExecutor{api: api}
}

func (e *ListUserOrdersExecutor) Execute(ctx context.Context, params json.RawMessage) Result {
	if e.api == nil {
		return apiFailure(ErrServiceNotConfigured)
	}
	var in userTokenParams
	if err := decodeParams(params, &in); err != nil {
		return invalidParams(err)
	}

	orders, err := e.api.ListUserOrders(ctx, in.UserJWT)
	if err != nil {
		return apiFailure(err)
	}
	return Success(orders)
}

type ListUserReturnsExecutor struct{ api CommerceAPI }

func NewListUserReturnsExecutor(api CommerceAPI) ToolExecutor {
	return &ListUserReturnsExecutor{api: api}
}

func (e *ListUserReturnsExecutor) Execute(ctx context.Context, params json.RawMessage) Result {
	if e.api == nil {
		return apiFailure(ErrServiceNotConfigured)
	}
	var in userTokenParams
	if err := decodeParams(params, &in); err != nil {
		return invalidParams(err)
	}

	returns, err := e.api.ListUserReturns(ctx, in.UserJWT)
	if err != nil {
		return apiFailure(err)
	}
	return Success(returns)
}

type CreateUserReturnExecutor struct{ api CommerceAPI }

func NewCreateUserReturnExecutor(api CommerceAPI) ToolExecutor {
	return &CreateUserReturnExecutor{api: api}
}

func (e *CreateUserReturnExecutor) Execute(ctx context.Context, params json.RawMessage) Result {
	if e.api == nil {
		return apiFailure(ErrServiceNotConfigured)
	}
	var in createUserReturnParams
	if err := decodeParams(params, &in); err != nil {
		return invalidParams(err)
	}
	if in.Data.Items == nil {
		in.Data.Items = []commerce.ReturnItemCreate{}
	}

	record, err := e.api.CreateUserReturn(ctx, in.Data, in.UserJWT)
	if err != nil {
		return apiFailure(err)
	}
	return Success(record)
}

type ListStorefrontExecutor struct{ api CommerceAPI }

func NewListStorefrontExecutor(api CommerceAPI) ToolExecutor {
	return &ListStorefrontExecutor{api: api}
}

func (e *ListStorefrontExecutor) Execute(ctx context.Context, _ json.RawMessage) Result {
	if e.api == nil {
		return apiFailure(ErrServiceNotConfigured)
	}

	catalog, err := e.api.ListStorefront(ctx)
	if err != nil {
		return apiFailure(err)
	}
	return Success(catalog)
}

func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}
	return json.Unmarshal(params, v)
}

func apiFailure(err error) Result {
	return Failure(APIErrorPrefix + err.Error())
}

func invalidParams(err error) Result {
	return Failure(fmt.Sprintf("invalid arguments: %v", err))
}
