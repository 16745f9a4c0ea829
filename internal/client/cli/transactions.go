package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/client/state"
	"github.com/dmitrijs2005/debtkeeper/internal/client/views"
	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

var txOptions = []string{"borrower", "amount", "type", "date", "due", "category", "tags", "note"}

// applyOptions overlays opts on in. "due=" or "due=none" clears the due date.
func (a *App) applyOptions(in *state.TransactionInput, opts map[string]string) error {
	now := a.now()
	for k, v := range opts {
		switch k {
		case "borrower":
			in.Borrower = v
		case "amount":
			amt, err := parseAmount(v)
			if err != nil {
				return err
			}
			in.Amount = amt
		case "type":
			typ, err := parseType(v)
			if err != nil {
				return err
			}
			in.Type = typ
		case "date":
			d, err := parseDate(v, now)
			if err != nil {
				return err
			}
			in.Date = d
		case "due":
			if v == "" || strings.EqualFold(v, "none") {
				in.DueDate = nil
				continue
			}
			d, err := parseDate(v, now)
			if err != nil {
				return err
			}
			in.DueDate = &d
		case "category":
			in.Category = v
		case "tags":
			in.Tags = splitTags(v)
		case "note":
			in.Note = v
		}
	}
	return nil
}

func addTransaction(a *App, name string, typ models.TransactionType, args []string) error {
	pos, opts := splitOptions(args, txOptions...)
	if len(pos) != 2 {
		return usage(name)
	}
	amt, err := parseAmount(pos[1])
	if err != nil {
		return err
	}

	in := state.TransactionInput{Borrower: pos[0], Amount: amt}
	if err := a.applyOptions(&in, opts); err != nil {
		return err
	}
	in.Type = typ

	if in.Category != "" && !a.cache.Settings().HasCategory(strings.TrimSpace(in.Category)) {
		a.printf("Note: %q is not in the category list.\n", in.Category)
	}

	t, err := a.cache.AddTransaction(in)
	if err != nil {
		return err
	}
	if t.IsLend() {
		a.printf("Recorded %s lent to %s (%s).\n", a.amount(t.Amount), t.Borrower, t.ID)
	} else {
		a.printf("Recorded %s repaid by %s (%s).\n", a.amount(t.Amount), t.Borrower, t.ID)
	}
	return nil
}

func cmdLend(_ context.Context, a *App, args []string) error {
	return addTransaction(a, "lend", models.TypeLend, args)
}

func cmdRepay(_ context.Context, a *App, args []string) error {
	return addTransaction(a, "repay", models.TypeRepayment, args)
}

func (a *App) findTransaction(id string) (models.Transaction, error) {
	for _, t := range a.cache.Snapshot().Transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
}

func cmdEdit(_ context.Context, a *App, args []string) error {
	pos, opts := splitOptions(args, txOptions...)
	if len(pos) != 1 || len(opts) == 0 {
		return usage("edit")
	}
	t, err := a.findTransaction(pos[0])
	if err != nil {
		return err
	}

	in := state.TransactionInput{
		Borrower: t.Borrower,
		Amount:   t.Amount,
		Date:     t.Date,
		DueDate:  t.DueDate,
		Type:     t.Type,
		Note:     t.Note,
		Category: t.Category,
		Tags:     t.Tags,
	}
	if err := a.applyOptions(&in, opts); err != nil {
		return err
	}
	if err := a.cache.UpdateTransaction(t.ID, in); err != nil {
		return err
	}
	a.println("Transaction updated.")
	return nil
}

func cmdDelete(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("delete")
	}
	t, err := a.findTransaction(args[0])
	if err != nil {
		return err
	}
	ok, err := a.confirm(ctx, fmt.Sprintf("Delete %s of %s with %s?", t.Type, a.amount(t.Amount), t.Borrower))
	if err != nil || !ok {
		return err
	}
	if err := a.cache.DeleteTransaction(t.ID); err != nil {
		return err
	}
	a.println("Transaction deleted.")
	return nil
}

func cmdList(_ context.Context, a *App, args []string) error {
	pos, opts := splitOptions(args, "text", "type", "borrower", "tag", "category", "from", "to")
	if len(pos) > 0 {
		opts["text"] = strings.Join(pos, " ")
	}

	q := views.Query{
		Text:     opts["text"],
		Borrower: opts["borrower"],
		Tag:      opts["tag"],
		Category: opts["category"],
	}
	if v, ok := opts["type"]; ok {
		typ, err := parseType(v)
		if err != nil {
			return err
		}
		q.Type = typ
	}
	var err error
	if v, ok := opts["from"]; ok {
		if q.From, err = parseDate(v, a.now()); err != nil {
			return err
		}
	}
	if v, ok := opts["to"]; ok {
		if q.To, err = parseDate(v, a.now()); err != nil {
			return err
		}
	}

	a.printTransactions(views.Filter(a.cache.ActiveTransactions(), q))
	return nil
}

func cmdDeleteBorrower(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("deleteborrower")
	}
	_, own, found := views.BorrowerDetail(a.cache.ActiveTransactions(), args[0])
	if !found {
		return fmt.Errorf("%w: borrower %s", common.ErrNotFound, args[0])
	}
	ok, err := a.confirm(ctx, fmt.Sprintf("Delete all %s of %s?", plural(len(own), "transaction"), args[0]))
	if err != nil || !ok {
		return err
	}
	n, err := a.cache.DeleteBorrower(args[0])
	if err != nil {
		return err
	}
	a.printf("Deleted %s.\n", plural(n, "transaction"))
	return nil
}

func cmdClear(ctx context.Context, a *App, _ []string) error {
	acc := a.cache.ActiveAccount()
	ok, err := a.confirm(ctx, fmt.Sprintf("Delete every transaction of %q?", acc.Name))
	if err != nil || !ok {
		return err
	}
	n, err := a.cache.ClearAccountData()
	if err != nil {
		return err
	}
	a.printf("Deleted %s.\n", plural(n, "transaction"))
	return nil
}
