package intent

import "keyshop/internal/productkey"

// CompletedIntent - заявка, к которой уже привязан ключ.
type CompletedIntent struct {
	PurchaseIntent
	Key *productkey.ProductKey `json:"product_key"`
}

type Classification struct {
	Pending   []*PurchaseIntent  `json:"pending"`
	Completed []*CompletedIntent `json:"completed"`
}

// Classify делит заявки на pending/completed по факту привязки ключа.
// Статус нигде не хранится - он всегда выводится из пула ключей, чтобы не
// было второго источника правды, который может разойтись с фактами.
// Чистая функция над двумя снапшотами, без побочных эффектов.
func Classify(intents []*PurchaseIntent, keys []*productkey.ProductKey) Classification {
	byIntent := make(map[string]*productkey.ProductKey, len(keys))
	for _, k := range keys {
		if k.PurchaseIntentID != nil {
			byIntent[*k.PurchaseIntentID] = k
		}
	}

	c := Classification{
		Pending:   []*PurchaseIntent{},
		Completed: []*CompletedIntent{},
	}
	for _, it := range intents {
		if k, ok := byIntent[it.ID]; ok {
			c.Completed = append(c.Completed, &CompletedIntent{PurchaseIntent: *it, Key: k})
		} else {
			c.Pending = append(c.Pending, it)
		}
	}

	return c
}
