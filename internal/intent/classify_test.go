package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyshop/internal/productkey"
)

func strptr(s string) *string { return &s }

func TestClassifyPartitionsByKeyBinding(t *testing.T) {
	now := time.Now()
	intents := []*PurchaseIntent{
		{ID: "i1", ProductID: "p1", ProductTitle: "Cheatloop PUBG", Email: "a@x.com", CreatedAt: now},
		{ID: "i2", ProductID: "p1", ProductTitle: "Cheatloop PUBG", Email: "b@x.com", CreatedAt: now},
		{ID: "i3", ProductID: "p2", ProductTitle: "Sinki", Email: "c@x.com", CreatedAt: now},
	}
	keys := []*productkey.ProductKey{
		{ID: 1, ProductID: "p1", KeyValue: "K1", IsUsed: true, PurchaseIntentID: strptr("i2")},
		{ID: 2, ProductID: "p1", KeyValue: "K2"},
		// привязка к несуществующей заявке не должна ломать разбиение
		{ID: 3, ProductID: "p2", KeyValue: "K3", IsUsed: true, PurchaseIntentID: strptr("ghost")},
	}

	c := Classify(intents, keys)

	require.Len(t, c.Completed, 1)
	assert.Equal(t, "i2", c.Completed[0].ID)
	assert.Equal(t, "K1", c.Completed[0].Key.KeyValue)

	require.Len(t, c.Pending, 2)
	pendingIDs := []string{c.Pending[0].ID, c.Pending[1].ID}
	assert.ElementsMatch(t, []string{"i1", "i3"}, pendingIDs)
}

func TestClassifyEmptyInputs(t *testing.T) {
	c := Classify(nil, nil)
	assert.Empty(t, c.Pending)
	assert.Empty(t, c.Completed)

	c = Classify([]*PurchaseIntent{{ID: "i1"}}, nil)
	require.Len(t, c.Pending, 1)
	assert.Empty(t, c.Completed)
}

func TestClassifyIsPure(t *testing.T) {
	intents := []*PurchaseIntent{{ID: "i1"}}
	keys := []*productkey.ProductKey{
		{ID: 1, KeyValue: "K1", IsUsed: true, PurchaseIntentID: strptr("i1")},
	}

	first := Classify(intents, keys)
	second := Classify(intents, keys)

	assert.Equal(t, first, second)
	// входные снапшоты не изменились
	assert.Equal(t, "i1", intents[0].ID)
	assert.Equal(t, "i1", *keys[0].PurchaseIntentID)
}
