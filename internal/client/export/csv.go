package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"ID", "Account", "Date", "Type", "Borrower", "Amount", "Category", "Note", "DueDate", "Tags"}

// CSV writes every transaction of s as one flat UTF-8 file with a byte order
// mark. Text fields are always quoted; dates and amounts are not.
func CSV(w io.Writer, s models.Snapshot) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\ufeff")

	quoted := make([]string, len(csvHeader))
	for i, h := range csvHeader {
		quoted[i] = quote(h)
	}
	writeLine(bw, quoted)

	names := accountNames(s)
	for _, t := range s.Transactions {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format(dateLayout)
		}
		writeLine(bw, []string{
			quote(t.ID),
			quote(names[t.AccountID]),
			t.Date.UTC().Format(dateLayout),
			quote(string(t.Type)),
			quote(t.Borrower),
			decimal.NewFromFloat(t.Amount).String(),
			quote(t.Category),
			quote(t.Note),
			due,
			quote(strings.Join(t.Tags, ",")),
		})
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func writeLine(w *bufio.Writer, fields []string) {
	w.WriteString(strings.Join(fields, ","))
	w.WriteString("\r\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func accountNames(s models.Snapshot) map[string]string {
	names := make(map[string]string, len(s.Accounts))
	for _, a := range s.Accounts {
		names[a.ID] = a.Name
	}
	return names
}
