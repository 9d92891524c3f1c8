// Package i18n resolves user-visible labels from YAML catalogs. Lookups never
// fail: a missing key resolves to the key itself.
package i18n

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed en-US.yaml
var defaultCatalog []byte

// Localizer is the lookup surface components depend on.
type Localizer interface {
	Lookup(key string) string
}

// Catalog holds flattened dot-separated keys.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]string
}

// Default returns the built-in English catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		// The embedded catalog is part of the build; a parse failure is a packaging bug.
		panic(fmt.Sprintf("i18n: embedded catalog: %v", err))
	}
	return c
}

// Load returns the default catalog merged with the override file, if any.
func Load(overridePath string) (*Catalog, error) {
	c := Default()
	if strings.TrimSpace(overridePath) == "" {
		return c, nil
	}
	data, err := os.ReadFile(overridePath)
	if err != nil {
		return c, fmt.Errorf("read locale %s: %w", overridePath, err)
	}
	override, err := Parse(data)
	if err != nil {
		return c, fmt.Errorf("parse locale %s: %w", overridePath, err)
	}
	c.Merge(override)
	return c, nil
}

// Parse decodes a nested YAML document into a catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	c := &Catalog{entries: make(map[string]string)}
	flatten("", raw, c.entries)
	return c, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Merge copies every entry of other over c.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range other.entries {
		c.entries[k] = v
	}
}

// Lookup returns the label for key, or key when it is missing.
func (c *Catalog) Lookup(key string) string {
	if c == nil {
		return key
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.entries[key]; ok {
		return v
	}
	return key
}

// Keys lists the known keys in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
