package state

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// UpdateSettings replaces the settings. Categories are trimmed and
// deduplicated; the language must be supported.
func (c *Cache) UpdateSettings(in models.Settings) error {
	if !in.Language.IsSupported() {
		return fmt.Errorf("%w: unsupported language %q", common.ErrInvalidInput, in.Language)
	}
	in.Currency = strings.TrimSpace(in.Currency)
	in.DateFormat = strings.TrimSpace(in.DateFormat)
	in.Categories = models.NormalizeCategories(in.Categories)
	return c.mutate(func(s *models.Snapshot) error {
		s.Settings = in
		return nil
	})
}

// AddCategory appends a category.
func (c *Cache) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name is required", common.ErrInvalidInput)
	}
	return c.mutate(func(s *models.Snapshot) error {
		if s.Settings.HasCategory(name) {
			return fmt.Errorf("%w: %s", common.ErrDuplicateCategory, name)
		}
		s.Settings.Categories = append(s.Settings.Categories, name)
		return nil
	})
}

// RemoveCategory drops a category from the list. Transactions that use it
// keep their category value.
func (c *Cache) RemoveCategory(name string) error {
	name = strings.TrimSpace(name)
	return c.mutate(func(s *models.Snapshot) error {
		cats := make([]string, 0, len(s.Settings.Categories))
		found := false
		for _, cat := range s.Settings.Categories {
			if cat == name {
				found = true
				continue
			}
			cats = append(cats, cat)
		}
		if !found {
			return fmt.Errorf("%w: category %s", common.ErrNotFound, name)
		}
		s.Settings.Categories = cats
		return nil
	})
}
