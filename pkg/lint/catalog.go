package lint

import (
	"fmt"
	"sync"
)

// ConflictError reports a registration against an already-taken rule ID.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("rule %q is already registered", e.ID)
}

// Catalog maps rule IDs to rule instances. It is an explicit value
// constructed by the host and passed into the engine; there is no ambient
// global catalog. Reads are safe for concurrent use. The host must not
// mutate the catalog while an analysis is in flight.
type Catalog struct {
	mu    sync.RWMutex
	rules map[string]Rule
	order []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{rules: make(map[string]Rule)}
}

// Register adds a rule keyed by its metadata ID. A duplicate ID returns a
// ConflictError and leaves the existing rule in place unless force is set,
// in which case the rule is overwritten at its original position.
func (c *Catalog) Register(rule Rule, force bool) error {
	id := rule.Metadata().ID
	if id == "" {
		return fmt.Errorf("rule has an empty ID")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.rules[id]; exists {
		if !force {
			return &ConflictError{ID: id}
		}
		c.rules[id] = rule
		return nil
	}
	c.rules[id] = rule
	c.order = append(c.order, id)
	return nil
}

// RegisterAll registers rules in order, stopping at the first conflict.
// Rules registered before the conflict remain registered; there is no
// rollback.
func (c *Catalog) RegisterAll(rules []Rule, force bool) error {
	for _, r := range rules {
		if err := c.Register(r, force); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the rule with the given ID.
func (c *Catalog) Get(id string) (Rule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rules[id]
	return r, ok
}

// Has reports whether a rule with the given ID is registered.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rules[id]
	return ok
}

// All returns every registered rule in insertion order.
func (c *Catalog) All() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Rule, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rules[id])
	}
	return out
}

// ByCategory returns the rules in the given category, in insertion order.
func (c *Catalog) ByCategory(category Category) []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Rule
	for _, id := range c.order {
		if c.rules[id].Metadata().Category == category {
			out = append(out, c.rules[id])
		}
	}
	return out
}

// Unregister removes a rule. Removing an absent ID is a no-op.
func (c *Catalog) Unregister(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rules[id]; !ok {
		return
	}
	delete(c.rules, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the catalog.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = make(map[string]Rule)
	c.order = nil
}

// Len returns the number of registered rules.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}
