package orderflowserver

import (
	"errors"

	restaurantclient "github.com/Apurer/go-gin-order-flow/internal/clients/http/restaurant"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	checkoutapp "github.com/Apurer/go-gin-order-flow/internal/domains/checkout/application"
	menuports "github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
	orderapp "github.com/Apurer/go-gin-order-flow/internal/domains/order/application"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
	apierrors "github.com/Apurer/go-gin-order-flow/internal/shared/errors"
)

// apiResponder maps order-flow API errors. Unclaimed errors come from upstream
// collaborators and surface as 502.
var apiResponder = apierrors.NewResponder("", apierrors.ErrBadGateway, checkoutProblem, lookupProblem)

// restaurantResponder maps restaurant backend errors. Unknown errors are internal.
var restaurantResponder = apierrors.NewResponder("", apierrors.ErrInternal, lookupProblem)

func checkoutProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, checkoutapp.ErrFlowBusy), errors.Is(err, checkoutapp.ErrFlowAbandoned):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, orderdomain.ErrMalformedSubmission),
		errors.Is(err, orderdomain.ErrMissingField),
		errors.Is(err, checkoutapp.ErrEmptyCart),
		errors.Is(err, cartdomain.ErrInvalidProductID),
		errors.Is(err, cartdomain.ErrInvalidQuantity),
		errors.Is(err, cartdomain.ErrNegativePrice):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, restaurantclient.ErrRejected):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, checkoutapp.ErrOrderCreation):
		return apierrors.ErrBadGateway.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func lookupProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orderports.ErrNotFound), errors.Is(err, menuports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrIdempotencyConflict), errors.Is(err, orderports.ErrIdempotencyInProgress):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
