package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

func cmdStatus(ctx context.Context, a *App, _ []string) error {
	info := a.cache.Status(ctx)
	d := a.cache.Diagnostics()

	w := a.table()
	defer w.Flush()

	fmt.Fprintf(w, "State:\t%s\n", d.State)
	if info.StorageExists {
		fmt.Fprintf(w, "Storage:\t%s (%s)\n", info.StorageLocation, humanize.Bytes(uint64(info.StorageSizeBytes)))
	} else {
		fmt.Fprintf(w, "Storage:\t%s (not found)\n", info.StorageLocation)
	}
	fmt.Fprintf(w, "Records:\t%d accounts, %d transactions, %d settings\n",
		info.RecordCounts.Accounts, info.RecordCounts.Transactions, info.RecordCounts.Settings)

	if d.LastFlushAt.IsZero() {
		fmt.Fprintf(w, "Flushes:\t%d\n", d.Flushes)
	} else {
		fmt.Fprintf(w, "Flushes:\t%d, last %s\n", d.Flushes, humanize.Time(d.LastFlushAt))
	}
	if d.LastError != nil {
		fmt.Fprintf(w, "Last error:\t%v (%d in a row)\n", d.LastError, d.ConsecutiveFailures)
	}
	for _, m := range d.Migration.Steps {
		if m.Changed > 0 {
			fmt.Fprintf(w, "Migration %d:\t%s, %d records\n", m.Version, m.Name, m.Changed)
		}
	}
	return nil
}

func cmdFlush(ctx context.Context, a *App, _ []string) error {
	if err := a.cache.Flush(ctx); err != nil {
		return err
	}
	a.println("All changes saved.")
	return nil
}
