// Package pricing resolves flavor prices from a static table.
//
// Tables are YAML documents of the form category -> namespace -> size id ->
// price. Since YAML is a superset of JSON, libcloud's pricing.json can be
// loaded unchanged; top-level keys that are not mappings and entries that
// are not plain size -> price pairs are ignored.
package pricing

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CategoryCompute is the category used for node sizes.
const CategoryCompute = "compute"

//go:embed default.yaml
var defaultTable []byte

// Lookup resolves a size price. ok is false when the table has no entry.
type Lookup interface {
	SizePrice(category, namespace, sizeID string) (price decimal.Decimal, ok bool)
}

// Table is an in-memory price table.
type Table struct {
	prices map[string]map[string]map[string]decimal.Decimal
}

// Default returns the table embedded in the binary.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("pricing: embedded table is invalid: %v", err))
	}
	return t
}

// Load reads a price table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: failed to read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("pricing: %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a price table. Prices are read from their literal text so
// no precision is lost to float conversion.
func Parse(data []byte) (*Table, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse price table: %w", err)
	}

	t := &Table{prices: make(map[string]map[string]map[string]decimal.Decimal)}
	for category, node := range doc {
		if node.Kind != yaml.MappingNode {
			continue
		}

		var namespaces map[string]yaml.Node
		if err := node.Decode(&namespaces); err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}

		byNamespace := make(map[string]map[string]decimal.Decimal, len(namespaces))
		for ns, nsNode := range namespaces {
			if nsNode.Kind != yaml.MappingNode {
				continue
			}
			var sizes map[string]yaml.Node
			if err := nsNode.Decode(&sizes); err != nil {
				return nil, fmt.Errorf("%s/%s: %w", category, ns, err)
			}

			bySize := make(map[string]decimal.Decimal, len(sizes))
			for id, priceNode := range sizes {
				// Newer tables nest some entries by region; only flat
				// size -> price entries are read.
				if priceNode.Kind != yaml.ScalarNode {
					continue
				}
				price, err := decimal.NewFromString(priceNode.Value)
				if err != nil {
					return nil, fmt.Errorf("%s/%s/%s: invalid price %q: %w", category, ns, id, priceNode.Value, err)
				}
				bySize[id] = price
			}
			byNamespace[ns] = bySize
		}
		t.prices[category] = byNamespace
	}
	return t, nil
}

// SizePrice implements Lookup.
func (t *Table) SizePrice(category, namespace, sizeID string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	price, ok := t.prices[category][namespace][sizeID]
	if !ok {
		return decimal.Zero, false
	}
	return price, true
}

// HasNamespace reports whether the table carries any price for namespace
// in category.
func (t *Table) HasNamespace(category, namespace string) bool {
	if t == nil {
		return false
	}
	return len(t.prices[category][namespace]) > 0
}
