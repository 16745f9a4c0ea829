package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/client/export"
	"github.com/dmitrijs2005/debtkeeper/internal/client/importer"
	"github.com/dmitrijs2005/debtkeeper/internal/filex"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

func cmdImport(_ context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("import")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	req, err := importer.ParseJSON(f)
	if err != nil {
		return err
	}
	res, err := a.cache.Import(req)
	if err != nil {
		return err
	}
	a.printf("Imported %s: %d new, %d replaced", plural(res.Imported, "transaction"), res.Added, res.Replaced)
	if res.AccountsAdded > 0 {
		a.printf(", %s added", plural(res.AccountsAdded, "account"))
	}
	a.println(".")
	return nil
}

func cmdExport(_ context.Context, a *App, args []string) error {
	if len(args) != 2 {
		return usage("export")
	}
	format, path := strings.ToLower(args[0]), args[1]

	var write func(f *os.File, s models.Snapshot) error
	switch format {
	case "csv":
		write = func(f *os.File, s models.Snapshot) error { return export.CSV(f, s) }
	case "xlsx":
		write = func(f *os.File, s models.Snapshot) error {
			return export.XLSX(f, s, export.HeadersFor(s.Settings.Language))
		}
	case "json":
		write = func(f *os.File, s models.Snapshot) error { return export.JSON(f, s) }
	default:
		return usage("export")
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	s := a.cache.Snapshot()
	if err := write(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	a.printf("Exported %s to %s.\n", plural(len(s.Transactions), "transaction"), path)
	return nil
}
