package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidOrderID) ||
		errors.Is(err, domain.ErrEmptyOrderCart) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
