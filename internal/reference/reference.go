// Package reference provides the fixed list of districts and the
// municipalities that belong to each of them.
package reference

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed locations.yaml
var locationsYAML []byte

type document struct {
	Districts []District `yaml:"districts"`
}

// District is one district and its municipalities, in display order.
type District struct {
	Name           string   `yaml:"name" json:"name"`
	Municipalities []string `yaml:"municipalities" json:"municipalities"`
}

// Catalog answers district and municipality questions. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	districts []District
	index     map[string]map[string]struct{}
}

// Parse builds a Catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse locations: %w", err)
	}

	c := &Catalog{index: make(map[string]map[string]struct{}, len(doc.Districts))}
	for _, d := range doc.Districts {
		if d.Name == "" {
			return nil, fmt.Errorf("district without a name")
		}
		if _, dup := c.index[d.Name]; dup {
			return nil, fmt.Errorf("duplicate district %q", d.Name)
		}
		set := make(map[string]struct{}, len(d.Municipalities))
		for _, m := range d.Municipalities {
			set[m] = struct{}{}
		}
		c.index[d.Name] = set
		c.districts = append(c.districts, d)
	}
	return c, nil
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(locationsYAML)
	if err != nil {
		panic(err) // embedded data is fixed at build time
	}
	return c
}

// Districts returns all district names.
func (c *Catalog) Districts() []string {
	names := make([]string, 0, len(c.districts))
	for _, d := range c.districts {
		names = append(names, d.Name)
	}
	return names
}

// All returns every district with its municipalities.
func (c *Catalog) All() []District {
	out := make([]District, len(c.districts))
	for i, d := range c.districts {
		out[i] = District{Name: d.Name, Municipalities: append([]string(nil), d.Municipalities...)}
	}
	return out
}

// HasDistrict reports whether district is in the catalog.
func (c *Catalog) HasDistrict(district string) bool {
	_, ok := c.index[district]
	return ok
}

// Municipalities returns the municipalities of district, or nil if the
// district is unknown or empty.
func (c *Catalog) Municipalities(district string) []string {
	for _, d := range c.districts {
		if d.Name == district {
			return append([]string(nil), d.Municipalities...)
		}
	}
	return nil
}

// Contains reports whether municipality belongs to district.
func (c *Catalog) Contains(district, municipality string) bool {
	set, ok := c.index[district]
	if !ok {
		return false
	}
	_, ok = set[municipality]
	return ok
}
