package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	maxSheetName = 31
	defaultSheet = "Sheet1"
	emptySheet   = "Transactions"
)

// XLSX writes a workbook with one sheet per account that has transactions.
// Sheet names are account names cut to the engine's limit; a " (n)" suffix
// tells apart names that collide after cutting.
func XLSX(w io.Writer, s models.Snapshot, h Headers) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(h.Columns))
	for i, c := range h.Columns {
		header[i] = c
	}

	used := make(map[string]bool)
	sheets := 0
	for _, acc := range s.Accounts {
		txs := s.TransactionsFor(acc.ID)
		if len(txs) == 0 {
			continue
		}

		name := uniqueSheetName(acc.Name, used)
		if sheets == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
		sheets++

		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		for i, t := range txs {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			row := sheetRow(t, h)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	if sheets == 0 {
		if err := f.SetSheetName(defaultSheet, emptySheet); err != nil {
			return err
		}
		if err := f.SetSheetRow(emptySheet, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func sheetRow(t models.Transaction, h Headers) []any {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.UTC().Format(dateLayout)
	}
	return []any{
		t.ID,
		t.Date.UTC().Format(dateLayout),
		t.Borrower,
		t.Category,
		strings.Join(t.Tags, ", "),
		h.status(t),
		t.Amount,
		t.Note,
		due,
	}
}

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")",
)

// uniqueSheetName returns a valid sheet name for account that is not in used
// and records it. Sheet names compare case-insensitively.
func uniqueSheetName(account string, used map[string]bool) string {
	base := strings.Trim(sheetNameReplacer.Replace(strings.TrimSpace(account)), "'")
	if base == "" {
		base = "Account"
	}

	name := truncateRunes(base, maxSheetName)
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		name = truncateRunes(base, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
