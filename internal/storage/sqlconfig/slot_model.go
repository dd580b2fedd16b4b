package sqlconfig

import "context"

// ISlotTable defines the interface for slot storage operations.
// Each slot is a single row keyed by name holding a JSON text value.
//
//go:generate mockery --name ISlotTable --output . --inpackage --with-expecter --filename mock_ISlotTable.go
type ISlotTable interface {
	// Get returns the stored value, found=false when the key has no row.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
