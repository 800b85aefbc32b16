package shell

import (
	"context"
	"fmt"
	"os"

	"literary_voice/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
)

const historyPageSize = 20

// Login exchanges email and password for the account's api key and stores it.
func (a *App) Login(ctx context.Context, email, password string) error {
	acc, err := a.Ledger.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.remember(acc.APIKey, email); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "\n✅ Login successful!")
	return nil
}

// Signup creates an account once both password entries agree.
func (a *App) Signup(ctx context.Context, email, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	acc, err := a.Ledger.Signup(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.remember(acc.APIKey, email); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "\n✅ Account created successfully!")
	fmt.Fprintf(a.Out, "You have %d credits to start.\n", acc.Credits)
	return nil
}

// Logout forgets the stored credential.
func (a *App) Logout() error {
	if err := a.Store.Clear(); err != nil {
		return err
	}
	a.Record.APIKey, a.Record.Email = "", ""
	fmt.Fprintln(a.Out, "\n👋 Logged out successfully!")
	return nil
}

func (a *App) remember(apiKey, email string) error {
	if err := a.Store.Save(apiKey, email); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	a.Record.APIKey, a.Record.Email = apiKey, email
	logrus.WithField("path", a.Store.Path()).Debug("credentials saved")
	return nil
}

// Balance prints the current balance and what each action costs.
func (a *App) Balance(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	credits, err := a.Ledger.Balance(ctx, a.Record.APIKey)
	if err != nil {
		return keyed(err)
	}
	fmt.Fprintf(a.Out, "\n💎 Current Balance: %d credits\n\n", credits)

	t := a.newTable()
	t.SetTitle("Credit costs")
	t.AppendHeader(table.Row{"Action", "Credits"})
	t.AppendRows([]table.Row{
		{"Review", CostReview},
		{"Information", CostInfo},
		{"Similar Books", CostSimilar},
	})
	t.Render()
	return nil
}

// History prints one page of the account's ledger entries, newest first.
func (a *App) History(ctx context.Context, page int) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	h, err := a.Ledger.History(ctx, a.Record.APIKey, page, historyPageSize)
	if err != nil {
		return keyed(err)
	}
	if len(h.Transactions) == 0 {
		fmt.Fprintln(a.Out, "\nNo transactions yet.")
		return nil
	}

	t := a.newTable()
	t.AppendHeader(table.Row{"When", "Action", "Amount"})
	for _, tx := range h.Transactions {
		t.AppendRow(table.Row{tx.Timestamp.Local().Format("2006-01-02 15:04"), tx.Action, fmt.Sprintf("%+d", tx.Amount)})
	}
	t.SetCaption("page %d of %d, %d entries", h.Page, h.TotalPages, h.Total)
	t.Render()
	return nil
}

// Plans prints the subscription tiers.
func (a *App) Plans() {
	t := a.newTable()
	t.SetTitle("⬆️  Upgrade Your Plan")
	t.AppendHeader(table.Row{"Plan", "Price", "Credits / month", "Reviews / month"})
	for _, p := range domain.Plans {
		t.AppendRow(table.Row{p.Name, p.Price, p.Credits, fmt.Sprintf("~%d", p.Credits/CostReview)})
	}
	t.Render()
	fmt.Fprintln(a.Out, "\nVisit: https://literaryvoice.com/upgrade")
	fmt.Fprintln(a.Out, "(Manual payment processing during beta)")
}

func (a *App) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if a.Out != nil {
		t.SetOutputMirror(a.Out)
	} else {
		t.SetOutputMirror(os.Stdout)
	}
	return t
}
