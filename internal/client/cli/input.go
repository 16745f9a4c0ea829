package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// splitOptions separates key=value options from positional arguments. Only
// keys listed in known are treated as options; keys are case-insensitive.
func splitOptions(args []string, known ...string) (positional []string, opts map[string]string) {
	opts = make(map[string]string)
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok && slices.Contains(known, strings.ToLower(k)) {
			opts[strings.ToLower(k)] = v
			continue
		}
		positional = append(positional, arg)
	}
	return positional, opts
}

func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", common.ErrInvalidInput, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: amount must not be negative", common.ErrInvalidInput)
	}
	f, _ := d.Float64()
	return f, nil
}

var inputDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"}

func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", common.ErrInvalidInput, s)
}

func parseType(s string) (models.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lend", "lent", "loan":
		return models.TypeLend, nil
	case "repay", "repaid", "repayment":
		return models.TypeRepayment, nil
	}
	return "", fmt.Errorf("%w: type %q, expected lend or repay", common.ErrInvalidInput, s)
}

func splitTags(s string) []string {
	return models.NormalizeTags(strings.Split(s, ","))
}

// confirm asks a yes/no question; anything but y/yes is a no.
func (a *App) confirm(ctx context.Context, question string) (bool, error) {
	a.printf("%s [y/N] ", question)
	line, err := a.readLine(ctx)
	if err != nil {
		a.println()
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	a.println("Cancelled.")
	return false, nil
}
