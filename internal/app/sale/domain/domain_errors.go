package domain

import "errors"

// Domain errors for SaleConfig value object
var (
	// ErrInvalidPercentOff indicates the sale percentage is outside the valid range (0-100).
	ErrInvalidPercentOff = errors.New("percent off must be between 0 and 100")

	// ErrEmptyItemID indicates an item reference without an identifier.
	ErrEmptyItemID = errors.New("item id cannot be empty")

	// ErrItemNotFound indicates an item id that is not in the current catalog view.
	ErrItemNotFound = errors.New("item not found")
)

// Domain errors for Preset
var (
	// ErrEmptyPresetName indicates an attempt to save a preset with an empty or blank name.
	ErrEmptyPresetName = errors.New("preset name cannot be empty")

	// ErrPresetNotFound indicates that a preset with the given ID does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPresetFormat indicates an import payload that is not a sequence of presets.
	ErrInvalidPresetFormat = errors.New("invalid preset file format")
)

// Domain errors for bulk updates
var (
	// ErrNoItemsSelected indicates a bulk update was requested for an empty set of items.
	ErrNoItemsSelected = errors.New("no items selected")

	// ErrBulkInProgress indicates a bulk update was triggered while another one is still running.
	ErrBulkInProgress = errors.New("a bulk update is already in progress")

	// ErrBulkUpdateFailed indicates that at least one item update of a bulk operation failed.
	ErrBulkUpdateFailed = errors.New("one or more item updates failed")
)

// Errors reported by the catalog service
var (
	// ErrCatalogTransport indicates the remote call did not succeed (network, non-2xx, bad payload).
	ErrCatalogTransport = errors.New("catalog service request failed")

	// ErrCatalogUserErrors indicates the remote service rejected the update with field-level errors.
	ErrCatalogUserErrors = errors.New("catalog service rejected the update")
)

// ErrNothingToConfirm is returned when confirming with no pending request.
var ErrNothingToConfirm = errors.New("nothing to confirm")

// IsValidation reports whether err is a caller input error.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidPercentOff),
		errors.Is(err, ErrEmptyItemID),
		errors.Is(err, ErrEmptyPresetName),
		errors.Is(err, ErrNoItemsSelected):
		return true
	}
	return false
}

// IsFormat reports whether err comes from a malformed import payload.
func IsFormat(err error) bool {
	return errors.Is(err, ErrInvalidPresetFormat)
}
