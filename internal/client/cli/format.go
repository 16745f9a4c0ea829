package cli

import (
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/shopspring/decimal"
)

var dateFormatReplacer = strings.NewReplacer("YYYY", "2006", "MM", "01", "DD", "02")

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func (a *App) money(d decimal.Decimal) string {
	cur := a.cache.Settings().Currency
	if d.IsNegative() {
		return "-" + cur + d.Abs().StringFixed(2)
	}
	return cur + d.StringFixed(2)
}

func (a *App) amount(f float64) string {
	return a.money(decimal.NewFromFloat(f))
}

// date renders t with the user's date format, e.g. "DD.MM.YYYY".
func (a *App) date(t time.Time) string {
	layout := dateFormatReplacer.Replace(a.cache.Settings().DateFormat)
	if layout == "" {
		layout = "2006-01-02"
	}
	return t.Format(layout)
}

func (a *App) printTransactions(txs []models.Transaction) {
	if len(txs) == 0 {
		a.println("No transactions.")
		return
	}
	w := a.table()
	defer w.Flush()
	w.Write([]byte("ID\tDATE\tTYPE\tBORROWER\tAMOUNT\tCATEGORY\tTAGS\tDUE\tNOTE\n"))
	for _, t := range txs {
		due := ""
		if t.DueDate != nil {
			due = a.date(*t.DueDate)
		}
		kind := "lend"
		if !t.IsLend() {
			kind = "repay"
		}
		row := []string{
			t.ID, a.date(t.Date), kind, t.Borrower, a.amount(t.Amount),
			t.Category, strings.Join(t.Tags, ","), due, t.Note,
		}
		w.Write([]byte(strings.Join(row, "\t") + "\n"))
	}
}
