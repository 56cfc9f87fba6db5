package m_preset_store

// Field constants for the preset_store table.
const (
	TableName = "preset_store"

	ColStoreKey  = "store_key"
	ColPayload   = "payload"
	ColUpdatedAt = "updated_at"
)
