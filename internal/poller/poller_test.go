package poller

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phinehas2020/havis-candy/internal/orders"
)

type mockOrderStore struct {
	created []orders.Order
	err     error
}

func (m *mockOrderStore) CreateOrder(_ context.Context, order orders.Order) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, order)
	return nil
}

func TestProcessMessage_RecordsOrder(t *testing.T) {
	store := &mockOrderStore{}
	p := &Poller{store: store}

	payload, err := json.Marshal(orders.Order{SessionID: "cs_1", AmountTotal: 2385, Currency: "usd", Status: "paid"})
	require.NoError(t, err)

	p.processMessage(context.Background(), payload)

	require.Len(t, store.created, 1)
	assert.Equal(t, "cs_1", store.created[0].SessionID)
	assert.Equal(t, int64(2385), store.created[0].AmountTotal)
}

func TestProcessMessage_DropsMalformedPayload(t *testing.T) {
	store := &mockOrderStore{}
	p := &Poller{store: store}

	p.processMessage(context.Background(), []byte(`{"session_id":`))

	assert.Empty(t, store.created)
}

func TestProcessMessage_DropsMissingSessionID(t *testing.T) {
	store := &mockOrderStore{}
	p := &Poller{store: store}

	p.processMessage(context.Background(), []byte(`{"amount_total":100}`))

	assert.Empty(t, store.created)
}

func TestProcessMessage_DuplicateIsSilentlyDropped(t *testing.T) {
	store := &mockOrderStore{err: orders.ErrDuplicateSession}
	p := &Poller{store: store}

	payload, err := json.Marshal(orders.Order{SessionID: "cs_1"})
	require.NoError(t, err)

	// Must not panic or retry; duplicates are expected on redelivery.
	p.processMessage(context.Background(), payload)
}
