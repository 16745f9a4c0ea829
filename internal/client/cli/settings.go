package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

func cmdSettings(_ context.Context, a *App, args []string) error {
	pos, opts := splitOptions(args, "currency", "dateformat", "language")
	if len(pos) > 0 {
		return usage("settings")
	}

	s := a.cache.Settings()
	if len(opts) == 0 {
		w := a.table()
		defer w.Flush()
		fmt.Fprintf(w, "currency\t%s\n", s.Currency)
		fmt.Fprintf(w, "dateformat\t%s\n", s.DateFormat)
		fmt.Fprintf(w, "language\t%s\n", s.Language)
		fmt.Fprintf(w, "categories\t%s\n", strings.Join(s.Categories, ", "))
		return nil
	}

	if v, ok := opts["currency"]; ok {
		s.Currency = v
	}
	if v, ok := opts["dateformat"]; ok {
		s.DateFormat = strings.ToUpper(v)
	}
	if v, ok := opts["language"]; ok {
		s.Language = models.Language(strings.ToLower(v))
	}
	if err := a.cache.UpdateSettings(s); err != nil {
		return err
	}
	a.println("Settings updated.")
	return nil
}

func cmdAddCategory(_ context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("addcategory")
	}
	if err := a.cache.AddCategory(args[0]); err != nil {
		return err
	}
	a.printf("Added category %q.\n", strings.TrimSpace(args[0]))
	return nil
}

func cmdRemoveCategory(_ context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("removecategory")
	}
	if err := a.cache.RemoveCategory(args[0]); err != nil {
		return err
	}
	a.printf("Removed category %q. Transactions keep their category.\n", strings.TrimSpace(args[0]))
	return nil
}
