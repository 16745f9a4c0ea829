package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/kballard/go-shellquote"
)

type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	run     func(ctx context.Context, a *App, args []string) error
}

type usageError struct {
	usage string
}

func (e usageError) Error() string { return "usage: " + e.usage }

func usage(c string) error {
	for _, cmd := range commands {
		if cmd.name == c {
			return usageError{usage: cmd.usage}
		}
	}
	return usageError{usage: c}
}

var commands []command

func init() {
	commands = []command{
		{name: "help", usage: "help", summary: "show available commands", run: cmdHelp},
		{name: "accounts", usage: "accounts", summary: "list accounts", run: cmdAccounts},
		{name: "addaccount", usage: "addaccount <name> [color]", summary: "create an account", run: cmdAddAccount},
		{name: "renameaccount", usage: "renameaccount <account> <name> [color]", summary: "rename or recolor an account", run: cmdRenameAccount},
		{name: "deleteaccount", usage: "deleteaccount <account>", summary: "delete an account and its transactions", run: cmdDeleteAccount},
		{name: "use", usage: "use <account>", summary: "switch the active account", run: cmdUse},
		{name: "lend", usage: "lend <borrower> <amount> [date=] [due=] [category=] [tags=] [note=]", summary: "record money lent", run: cmdLend},
		{name: "repay", usage: "repay <borrower> <amount> [date=] [category=] [tags=] [note=]", summary: "record a repayment", run: cmdRepay},
		{name: "edit", usage: "edit <id> [borrower=] [amount=] [type=] [date=] [due=] [category=] [tags=] [note=]", summary: "change a transaction", run: cmdEdit},
		{name: "delete", aliases: []string{"rm"}, usage: "delete <id>", summary: "delete a transaction", run: cmdDelete},
		{name: "list", aliases: []string{"l", "ls"}, usage: "list [text=] [type=] [borrower=] [tag=] [category=] [from=] [to=]", summary: "list transactions of the active account", run: cmdList},
		{name: "borrowers", usage: "borrowers", summary: "balances per borrower", run: cmdBorrowers},
		{name: "borrower", usage: "borrower <name>", summary: "history of one borrower", run: cmdBorrower},
		{name: "deleteborrower", usage: "deleteborrower <name>", summary: "delete all transactions of a borrower", run: cmdDeleteBorrower},
		{name: "tags", usage: "tags", summary: "balances per tag", run: cmdTags},
		{name: "months", usage: "months", summary: "transactions grouped by month", run: cmdMonths},
		{name: "categories", usage: "categories", summary: "categories and their balances", run: cmdCategories},
		{name: "addcategory", usage: "addcategory <name>", summary: "add a category", run: cmdAddCategory},
		{name: "removecategory", usage: "removecategory <name>", summary: "remove a category", run: cmdRemoveCategory},
		{name: "settings", usage: "settings [currency=] [dateformat=] [language=]", summary: "show or change settings", run: cmdSettings},
		{name: "stats", usage: "stats", summary: "totals and distribution", run: cmdStats},
		{name: "upcoming", usage: "upcoming [days]", summary: "loans due soon", run: cmdUpcoming},
		{name: "clear", usage: "clear", summary: "delete every transaction of the active account", run: cmdClear},
		{name: "import", usage: "import <file.json>", summary: "merge transactions from a JSON file", run: cmdImport},
		{name: "export", usage: "export <csv|xlsx|json> <file>", summary: "write the data to a file", run: cmdExport},
		{name: "status", usage: "status", summary: "storage and flush diagnostics", run: cmdStatus},
		{name: "flush", usage: "flush", summary: "write pending changes now", run: cmdFlush},
	}
}

func lookup(name string) (command, bool) {
	name = strings.ToLower(name)
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, alias := range c.aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// runREPL reads lines, splits them shell-style and dispatches on the first
// word. Command errors are reported to the user and never end the loop; it
// returns on "exit"/"quit", end of input or cancellation.
func runREPL(ctx context.Context, a *App) error {
	for {
		if a.interactive {
			a.printf("dk %s> ", a.prompt())
		}
		line, err := a.readLine(ctx)
		if err != nil {
			return nil
		}

		args, err := shellquote.Split(line)
		if err != nil {
			a.println("Cannot parse line:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit":
			a.println("Bye!")
			return nil
		}

		cmd, ok := lookup(args[0])
		if !ok {
			a.println("Unknown command:", args[0])
			continue
		}
		if err := cmd.run(ctx, a, args[1:]); err != nil {
			a.report(err)
		}
	}
}

func (a *App) report(err error) {
	var ue usageError
	switch {
	case errors.As(err, &ue):
		a.println("Usage:", ue.usage)
	case errors.Is(err, common.ErrLastAccount):
		a.println("The last account cannot be deleted.")
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrUnknownAccount),
		errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrDuplicateCategory):
		a.println("Error:", err)
	default:
		a.logger.Error(context.Background(), "command failed", "error", err)
		a.println("Error:", err)
	}
}

func cmdHelp(_ context.Context, a *App, _ []string) error {
	width := 0
	for _, c := range commands {
		width = max(width, len(c.name))
	}
	a.println("Available commands:")
	for _, c := range commands {
		a.printf("  %-*s  %s\n", width, c.name, c.summary)
	}
	a.printf("  %-*s  %s\n", width, "exit", "leave the program")
	a.println("Use quotes for values with spaces, e.g. lend \"Bob Smith\" 20 note=\"for lunch\".")
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
