package m_preset_store

import (
	"cloud.google.com/go/spanner"
)

// BuildUpsertMap prepares the row written for a store key.
// updated_at is stamped with the commit timestamp.
func BuildUpsertMap(storeKey string, payload []byte) map[string]interface{} {
	return map[string]interface{}{
		ColStoreKey:  storeKey,
		ColPayload:   string(payload),
		ColUpdatedAt: spanner.CommitTimestamp,
	}
}

// UpsertMutation builds an InsertOrUpdate mutation from a values map.
func UpsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.InsertOrUpdate(TableName, cols, vals)
}

// SelectPayloadSQL reads the payload of a single store key.
const SelectPayloadSQL = `SELECT payload FROM preset_store WHERE store_key = @key`
