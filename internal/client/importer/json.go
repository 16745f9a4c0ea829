package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type rawFile struct {
	Accounts     []rawAccount     `json:"accounts"`
	Transactions []rawTransaction `json:"transactions"`
}

type rawAccount struct {
	ID          any `json:"id"`
	Name        any `json:"name"`
	AvatarColor any `json:"avatarColor"`
}

type rawTransaction struct {
	ID        any `json:"id"`
	AccountID any `json:"accountId"`
	Borrower  any `json:"borrower"`
	Amount    any `json:"amount"`
	Date      any `json:"date"`
	DueDate   any `json:"dueDate"`
	Type      any `json:"type"`
	Note      any `json:"note"`
	Category  any `json:"category"`
	Tags      any `json:"tags"`
}

// ParseJSON reads a full Snapshot file or a {transactions, accounts} subset.
// Only a file that is not a JSON object is an error; individual rows are
// coerced: bad or negative amounts become 0, bad dates become now.
func ParseJSON(r io.Reader) (Request, error) {
	return parseJSON(r, time.Now)
}

func parseJSON(r io.Reader, now func() time.Time) (Request, error) {
	var f rawFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Request{}, fmt.Errorf("failed to parse import file: %w", err)
	}

	req := Request{}
	for _, a := range f.Accounts {
		req.Accounts = append(req.Accounts, models.Account{
			ID:          text(a.ID),
			Name:        text(a.Name),
			AvatarColor: text(a.AvatarColor),
		})
	}
	for _, t := range f.Transactions {
		tx := models.Transaction{
			ID:        text(t.ID),
			AccountID: text(t.AccountID),
			Borrower:  strings.TrimSpace(text(t.Borrower)),
			Amount:    coerceAmount(t.Amount),
			Type:      coerceType(text(t.Type)),
			Note:      text(t.Note),
			Category:  strings.TrimSpace(text(t.Category)),
			Tags:      coerceTags(t.Tags),
		}
		if d, ok := parseDate(text(t.Date)); ok {
			tx.Date = d
		} else {
			tx.Date = now().UTC()
		}
		if d, ok := parseDate(text(t.DueDate)); ok {
			tx.DueDate = &d
		}
		req.Transactions = append(req.Transactions, tx)
	}
	return req, nil
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func coerceAmount(v any) float64 {
	var d decimal.Decimal
	switch x := v.(type) {
	case float64:
		d = decimal.NewFromFloat(x)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return 0
		}
		d = parsed
	default:
		return 0
	}
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

func coerceType(s string) models.TransactionType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REPAYMENT", "REPAY", "REPAID":
		return models.TypeRepayment
	default:
		return models.TypeLend
	}
}

func coerceTags(v any) []string {
	var tags []string
	switch x := v.(type) {
	case string:
		tags = strings.Split(x, ",")
	case []any:
		for _, item := range x {
			tags = append(tags, text(item))
		}
	}
	return models.NormalizeTags(tags)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
