package validators

import "errors"

var (
	ErrUnsupportedType   = errors.New("unsupported type for validation")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrInvalidFields     = errors.New("record fields break the entity contract")
)
