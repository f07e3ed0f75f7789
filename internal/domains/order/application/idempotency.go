package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

type normalizedDraft struct {
	Customer string           `json:"customer"`
	Phone    string           `json:"phone"`
	Address  string           `json:"address"`
	Position string           `json:"position,omitempty"`
	Priority bool             `json:"priority"`
	Lines    []normalizedLine `json:"lines"`
}

type normalizedLine struct {
	ProductID int64  `json:"pizzaId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// FingerprintDraft builds a deterministic hash of the draft. Pricing is derived, so it is left out.
func FingerprintDraft(draft domain.Draft) (string, error) {
	normalized := normalizedDraft{
		Customer: draft.Customer,
		Phone:    draft.Phone,
		Address:  draft.Address,
		Priority: draft.Priority,
		Lines:    make([]normalizedLine, 0, len(draft.Cart)),
	}
	if draft.Position != nil {
		normalized.Position = draft.Position.String()
	}
	for _, item := range draft.Cart {
		normalized.Lines = append(normalized.Lines, normalizedLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
