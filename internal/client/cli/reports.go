package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/client/views"
	"github.com/dmitrijs2005/debtkeeper/internal/common"
)

func cmdBorrowers(_ context.Context, a *App, _ []string) error {
	list := views.Borrowers(a.cache.ActiveTransactions())
	if len(list) == 0 {
		a.println("No borrowers.")
		return nil
	}
	w := a.table()
	defer w.Flush()
	fmt.Fprintln(w, "BORROWER\tLENT\tREPAID\tBALANCE\tTRANSACTIONS\tLAST")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			b.Name, a.money(b.Lent), a.money(b.Repaid), a.money(b.Balance), b.Count, a.date(b.Last))
	}
	return nil
}

func cmdBorrower(_ context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("borrower")
	}
	b, txs, ok := views.BorrowerDetail(a.cache.ActiveTransactions(), args[0])
	if !ok {
		return fmt.Errorf("%w: borrower %s", common.ErrNotFound, args[0])
	}
	a.printf("%s: lent %s, repaid %s, balance %s\n", b.Name, a.money(b.Lent), a.money(b.Repaid), a.money(b.Balance))
	a.printTransactions(txs)
	return nil
}

func cmdTags(_ context.Context, a *App, _ []string) error {
	list := views.Tags(a.cache.ActiveTransactions())
	if len(list) == 0 {
		a.println("No transactions.")
		return nil
	}
	w := a.table()
	defer w.Flush()
	fmt.Fprintln(w, "TAG\tLENT\tREPAID\tBALANCE\tTRANSACTIONS")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", t.Tag, a.money(t.Lent), a.money(t.Repaid), a.money(t.Balance), t.Count)
	}
	return nil
}

func (a *App) printGroups(groups []views.Group) {
	if len(groups) == 0 {
		a.println("No transactions.")
		return
	}
	w := a.table()
	defer w.Flush()
	fmt.Fprintln(w, "GROUP\tLENT\tREPAID\tBALANCE\tTRANSACTIONS")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", g.Key, a.money(g.Lent), a.money(g.Repaid), a.money(g.Balance), len(g.Transactions))
	}
}

func cmdMonths(_ context.Context, a *App, _ []string) error {
	a.printGroups(views.ByMonth(a.cache.ActiveTransactions()))
	return nil
}

func cmdCategories(_ context.Context, a *App, _ []string) error {
	a.println("Categories:", strings.Join(a.cache.Settings().Categories, ", "))
	a.printGroups(views.ByCategory(a.cache.ActiveTransactions()))
	return nil
}

func cmdStats(_ context.Context, a *App, _ []string) error {
	txs := a.cache.ActiveTransactions()
	s := views.Totals(txs)

	w := a.table()
	fmt.Fprintf(w, "Account:\t%s\n", a.cache.ActiveAccount().Name)
	fmt.Fprintf(w, "Lent:\t%s\n", a.money(s.Lent))
	fmt.Fprintf(w, "Repaid:\t%s\n", a.money(s.Repaid))
	fmt.Fprintf(w, "Outstanding:\t%s\n", a.money(s.Outstanding))
	fmt.Fprintf(w, "Transactions:\t%d\n", s.Count)
	fmt.Fprintf(w, "Borrowers:\t%d\n", s.Borrowers)
	w.Flush()

	if dist := views.Distribution(txs); len(dist) > 0 {
		a.println("Distribution:")
		w = a.table()
		for _, d := range dist {
			fmt.Fprintf(w, "  %s\t%s\t%.1f%%\n", d.Name, a.money(d.Balance), d.Percent)
		}
		w.Flush()
	}

	if series := views.RunningBalance(txs); len(series) > 0 {
		const tail = 10
		if len(series) > tail {
			series = series[len(series)-tail:]
		}
		a.println("Balance trend:")
		w = a.table()
		for _, p := range series {
			fmt.Fprintf(w, "  %s\t%s\n", a.date(p.Date), a.money(p.Balance))
		}
		w.Flush()
	}
	return nil
}

func cmdUpcoming(_ context.Context, a *App, args []string) error {
	days := 7
	if len(args) > 1 {
		return usage("upcoming")
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return usage("upcoming")
		}
		days = n
	}

	list := views.Upcoming(a.cache.ActiveTransactions(), a.now(), time.Duration(days)*24*time.Hour)
	if len(list) == 0 {
		a.printf("Nothing due in the next %s.\n", plural(days, "day"))
		return nil
	}
	w := a.table()
	defer w.Flush()
	fmt.Fprintln(w, "DUE\tBORROWER\tAMOUNT\tID\t")
	for _, r := range list {
		when := fmt.Sprintf("in %s", plural(r.DaysLeft, "day"))
		if r.Overdue {
			when = "overdue"
		}
		t := r.Transaction
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.date(*t.DueDate), t.Borrower, a.amount(t.Amount), t.ID, when)
	}
	return nil
}
