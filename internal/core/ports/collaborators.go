package ports

import (
	"context"

	"mestrace/internal/core/domain/model/kernel"
)

// RoleLookup resolves role membership. User and role administration live in
// an adjacent system; the engine only asks questions.
type RoleLookup interface {
	// IsInRole reports whether the user holds the role.
	IsInRole(ctx context.Context, userID kernel.UUID, role RecipientRole) (bool, error)
}

// InventoryLookup answers raw-material availability questions. Inventory
// accounting itself is out of scope for the engine.
type InventoryLookup interface {
	// HeatNumbersAvailable reports whether all given heat numbers are
	// available for allocation.
	HeatNumbersAvailable(ctx context.Context, heatNumbers []string) (bool, error)
}

// ProcessDefinition is one step of a product's process pipeline as defined
// in the process catalog.
type ProcessDefinition struct {
	Code          string
	Name          string
	SequenceOrder int
}

// ProcessCatalog serves process definitions. Defining processes and their
// order is master data maintained elsewhere.
type ProcessCatalog interface {
	// Pipeline returns the ordered process definitions for a product.
	Pipeline(ctx context.Context, productCode string) ([]ProcessDefinition, error)
}
