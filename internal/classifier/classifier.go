// Package classifier assigns variable names to semantic categories using an
// ordered keyword table.
package classifier

import (
	"strings"
	"sync"

	"github.com/mat-analysis/pkg/model"
)

// Rule maps a set of lower-case keywords to a category. A name matches when
// its lower-cased form contains any keyword.
type Rule struct {
	Category model.Category
	Keywords []string
}

// Matches reports whether lowered contains one of the rule's keywords.
func (r Rule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// defaultRules is evaluated top to bottom; the first match wins and names
// that match nothing fall into CategoryOther.
var defaultRules = []Rule{
	{Category: model.CategoryTime, Keywords: []string{"time"}},
	{Category: model.CategoryElectrical, Keywords: []string{
		"voltage", "current", "power", "v[", "i[", "p[", "volt", "amp", "dc", "ac",
	}},
	{Category: model.CategoryThermal, Keywords: []string{"temp", "heat", "cool", "thermal"}},
	{Category: model.CategoryMechanical, Keywords: []string{"speed", "torque", "rpm", "mechanical", "omega"}},
	{Category: model.CategoryControl, Keywords: []string{"control", "ref", "cmd", "set", "governor"}},
	{Category: model.CategoryFault, Keywords: []string{"fault", "error", "alarm", "trip"}},
}

// Rules returns a copy of the default rule table in priority order.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	for i, r := range defaultRules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Classifier categorizes names. It is safe for concurrent use.
type Classifier struct {
	rules []Rule

	mu        sync.RWMutex
	cache     map[string]model.Category
	cacheSize int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the rule table.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithCacheSize bounds the per-name result cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(c *Classifier) {
		if n >= 0 {
			c.cacheSize = n
		}
	}
}

// New creates a Classifier with the default rules.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		rules:     Rules(),
		cache:     make(map[string]model.Category),
		cacheSize: 10000,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Category returns the category of a single name.
func (c *Classifier) Category(name string) model.Category {
	c.mu.RLock()
	cat, ok := c.cache[name]
	c.mu.RUnlock()
	if ok {
		return cat
	}

	cat = c.match(strings.ToLower(name))

	c.mu.Lock()
	if len(c.cache) < c.cacheSize {
		c.cache[name] = cat
	}
	c.mu.Unlock()
	return cat
}

func (c *Classifier) match(lowered string) model.Category {
	if lowered == "" {
		return model.CategoryOther
	}
	for _, r := range c.rules {
		if r.Matches(lowered) {
			return r.Category
		}
	}
	return model.CategoryOther
}

// Classify groups names by category. Every category in model.AllCategories
// is present in the result, and each group keeps input order.
func (c *Classifier) Classify(names []string) map[model.Category][]string {
	groups := make(map[model.Category][]string, len(model.AllCategories))
	for _, cat := range model.AllCategories {
		groups[cat] = make([]string, 0)
	}
	for _, name := range names {
		cat := c.Category(name)
		groups[cat] = append(groups[cat], name)
	}
	return groups
}

var defaultClassifier = New()

// Classify groups names using the default rules.
func Classify(names []string) map[model.Category][]string {
	return defaultClassifier.Classify(names)
}

// CategoryOf returns the category of name under the default rules.
func CategoryOf(name string) model.Category {
	return defaultClassifier.Category(name)
}
