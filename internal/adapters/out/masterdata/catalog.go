// Package masterdata provides in-process stand-ins for the adjacent master
// data systems: the process catalog and the raw-material inventory. Both are
// owned elsewhere; these adapters carry just enough behavior to run the
// engine until the real integrations land.
package masterdata

import (
	"context"
	"sort"

	"mestrace/internal/core/ports"
	"mestrace/internal/pkg/errs"
)

// UniformProcessCatalog serves the same pipeline for every product code.
// Product-specific routing belongs to the ERP; until that integration exists
// every product runs the shop's standard route.
type UniformProcessCatalog struct {
	pipeline []ports.ProcessDefinition
}

// NewUniformProcessCatalog creates a catalog over one fixed pipeline. The
// definitions are kept ordered by sequence.
func NewUniformProcessCatalog(definitions []ports.ProcessDefinition) (*UniformProcessCatalog, error) {
	if len(definitions) == 0 {
		return nil, errs.NewValueIsRequiredError("definitions")
	}

	seen := make(map[int]bool, len(definitions))
	ordered := make([]ports.ProcessDefinition, len(definitions))
	copy(ordered, definitions)
	for _, definition := range ordered {
		if definition.Code == "" {
			return nil, errs.NewValueIsRequiredError("processCode")
		}
		if definition.SequenceOrder <= 0 || seen[definition.SequenceOrder] {
			return nil, errs.NewValueIsInvalidError("sequenceOrder")
		}
		seen[definition.SequenceOrder] = true
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SequenceOrder < ordered[j].SequenceOrder
	})

	return &UniformProcessCatalog{pipeline: ordered}, nil
}

// Pipeline returns the standard route regardless of product code.
func (c *UniformProcessCatalog) Pipeline(_ context.Context, _ string) ([]ports.ProcessDefinition, error) {
	out := make([]ports.ProcessDefinition, len(c.pipeline))
	copy(out, c.pipeline)
	return out, nil
}

// PermissiveInventory treats every heat number as available. Inventory
// accounting is out of scope for the engine; the real check belongs to the
// stores system.
type PermissiveInventory struct{}

// NewPermissiveInventory creates the pass-through inventory lookup.
func NewPermissiveInventory() *PermissiveInventory {
	return &PermissiveInventory{}
}

// HeatNumbersAvailable accepts any non-empty heat numbers.
func (i *PermissiveInventory) HeatNumbersAvailable(_ context.Context, heatNumbers []string) (bool, error) {
	for _, heatNumber := range heatNumbers {
		if heatNumber == "" {
			return false, nil
		}
	}
	return true, nil
}

var (
	_ ports.ProcessCatalog  = (*UniformProcessCatalog)(nil)
	_ ports.InventoryLookup = (*PermissiveInventory)(nil)
)
