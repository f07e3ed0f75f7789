package mapper

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

func TestToRawForm_PriorityMarker(t *testing.T) {
	raw := ToRawForm(Submission{Customer: "Ana", Phone: "123", Address: "Main 1", Priority: true})
	require.Equal(t, orderdomain.PriorityMarker, raw[orderdomain.FieldPriority])

	raw = ToRawForm(Submission{Customer: "Ana"})
	_, ok := raw[orderdomain.FieldPriority]
	require.False(t, ok)
}

func TestFromValues(t *testing.T) {
	raw, err := FromValues(url.Values{"customer": {"Ana"}, "priority": {"on"}})
	require.NoError(t, err)
	require.Equal(t, orderdomain.RawForm{"customer": "Ana", "priority": "on"}, raw)

	_, err = FromValues(url.Values{"phone": {"1", "2"}})
	require.ErrorIs(t, err, orderdomain.ErrMalformedSubmission)
}
