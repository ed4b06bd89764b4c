package faqs

import (
	"sort"
	"strings"
	"sync"

	"github.com/lucabelezal/cardlimit-service/internal/models"
)

// Sort keys accepted by Search. Anything else keeps seed order.
const (
	SortNewest   = "newest"
	SortHelpful  = "helpful"
	SortQuestion = "question"
)

// QueryOptions filter and order a catalog search.
type QueryOptions struct {
	Search   string
	Category string
	SortBy   string
}

// Catalog is the in-memory FAQ store. The seed entries are fixed; only
// helpful counts change at runtime.
type Catalog struct {
	mu   sync.RWMutex
	faqs []models.FAQ
}

// NewCatalog initializes a catalog with the seed entries
func NewCatalog() *Catalog {
	return &Catalog{faqs: seed()}
}

// Search returns a filtered, sorted copy of the catalog. Matching is a
// case-insensitive substring scan over question, answer and tags.
func (c *Catalog) Search(opts QueryOptions) []models.FAQ {
	c.mu.RLock()
	defer c.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(opts.Search))
	result := make([]models.FAQ, 0, len(c.faqs))
	for _, f := range c.faqs {
		if opts.Category != "" && f.Category != opts.Category {
			continue
		}
		if needle != "" && !matches(f, needle) {
			continue
		}
		result = append(result, f)
	}

	switch opts.SortBy {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortHelpful:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].HelpfulCount > result[j].HelpfulCount
		})
	case SortQuestion:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Question < result[j].Question
		})
	}
	return result
}

// Get returns the FAQ with the given id
func (c *Catalog) Get(id string) (models.FAQ, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.faqs {
		if f.ID == id {
			return f, true
		}
	}
	return models.FAQ{}, false
}

// Vote increments the helpful count of the FAQ with the given id and
// returns the updated entry.
func (c *Catalog) Vote(id string) (models.FAQ, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.faqs {
		if c.faqs[i].ID == id {
			c.faqs[i].HelpfulCount++
			return c.faqs[i], true
		}
	}
	return models.FAQ{}, false
}

// Categories returns the distinct categories in seed order
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool, len(c.faqs))
	var out []string
	for _, f := range c.faqs {
		if !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	return out
}

func matches(f models.FAQ, needle string) bool {
	if strings.Contains(strings.ToLower(f.Question), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(f.Answer), needle) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
