package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// resolveAccount finds an account by id or, failing that, by
// case-insensitive name.
func (a *App) resolveAccount(ref string) (models.Account, error) {
	s := a.cache.Snapshot()
	if acc, ok := s.Account(ref); ok {
		return acc, nil
	}
	var found []models.Account
	for _, acc := range s.Accounts {
		if strings.EqualFold(acc.Name, ref) {
			found = append(found, acc)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return models.Account{}, fmt.Errorf("%w: %s", common.ErrUnknownAccount, ref)
	default:
		return models.Account{}, fmt.Errorf("%w: several accounts are named %q, use the id", common.ErrInvalidInput, ref)
	}
}

func cmdAccounts(_ context.Context, a *App, _ []string) error {
	s := a.cache.Snapshot()
	w := a.table()
	defer w.Flush()
	fmt.Fprintln(w, "\tID\tNAME\tCOLOR\tTRANSACTIONS")
	for _, acc := range s.Accounts {
		mark := ""
		if acc.ID == s.CurrentAccountID {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", mark, acc.ID, acc.Name, acc.AvatarColor, len(s.TransactionsFor(acc.ID)))
	}
	return nil
}

func cmdAddAccount(_ context.Context, a *App, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("addaccount")
	}
	color := ""
	if len(args) == 2 {
		color = args[1]
	}
	acc, err := a.cache.AddAccount(args[0], color)
	if err != nil {
		return err
	}
	a.printf("Created account %q (%s).\n", acc.Name, acc.ID)
	return nil
}

func cmdRenameAccount(_ context.Context, a *App, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usage("renameaccount")
	}
	acc, err := a.resolveAccount(args[0])
	if err != nil {
		return err
	}
	color := ""
	if len(args) == 3 {
		color = args[2]
	}
	if err := a.cache.UpdateAccount(acc.ID, args[1], color); err != nil {
		return err
	}
	a.println("Account updated.")
	return nil
}

func cmdDeleteAccount(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("deleteaccount")
	}
	acc, err := a.resolveAccount(args[0])
	if err != nil {
		return err
	}
	if len(a.cache.Snapshot().Accounts) == 1 {
		return common.ErrLastAccount
	}

	n := len(a.cache.Snapshot().TransactionsFor(acc.ID))
	ok, err := a.confirm(ctx, fmt.Sprintf("Delete account %q and its %s?", acc.Name, plural(n, "transaction")))
	if err != nil || !ok {
		return err
	}
	if err := a.cache.DeleteAccount(acc.ID); err != nil {
		return err
	}
	a.printf("Deleted account %q. Active account: %s.\n", acc.Name, a.cache.ActiveAccount().Name)
	return nil
}

func cmdUse(_ context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("use")
	}
	acc, err := a.resolveAccount(args[0])
	if err != nil {
		return err
	}
	if err := a.cache.SwitchAccount(acc.ID); err != nil {
		return err
	}
	a.printf("Switched to %q.\n", acc.Name)
	return nil
}
