package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var banner = strings.Join([]string{
	strings.Repeat("=", 50),
	"           The Literary Voice",
	"        Your AI Reading Companion",
	strings.Repeat("=", 50),
}, "\n")

// Run checks the ledger service is up, shows the sign-in menu when no
// credential is stored, then the main menu until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.Ledger.Health(ctx); err != nil {
		return fmt.Errorf("ledger service unavailable: %w", err)
	}
	if !a.Record.LoggedIn() {
		ok, err := a.authMenu(ctx)
		if err != nil || !ok {
			return ignoreEOF(err)
		}
	}
	return ignoreEOF(a.mainMenu(ctx))
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (a *App) fail(err error) {
	fmt.Fprintf(a.Out, "\n❌ %v\n", err)
}

// authMenu returns true once the user is signed in.
func (a *App) authMenu(ctx context.Context) (bool, error) {
	for {
		fmt.Fprintf(a.Out, "\n%s\n\n", banner)
		fmt.Fprintln(a.Out, "[1] 🔐 Login")
		fmt.Fprintln(a.Out, "[2] ✨ Sign Up")
		fmt.Fprintln(a.Out, "[3] ❌ Exit")
		choice, err := a.prompt("\n> ")
		if err != nil {
			return false, err
		}

		switch choice {
		case "1":
			err = a.PromptLogin(ctx)
		case "2":
			err = a.PromptSignup(ctx)
		case "3":
			fmt.Fprintln(a.Out, "\nGoodbye! 📚")
			return false, nil
		default:
			fmt.Fprintln(a.Out, "\n❌ Invalid choice!")
			continue
		}
		if errors.Is(err, io.EOF) {
			return false, err
		}
		if err != nil {
			a.fail(err)
			continue
		}
		return true, nil
	}
}

// PromptLogin asks for email and password, then logs in.
func (a *App) PromptLogin(ctx context.Context) error {
	fmt.Fprintln(a.Out, "\n🔐 Login")
	email, err := a.prompt("Email: ")
	if err != nil {
		return err
	}
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}
	return a.Login(ctx, email, password)
}

// PromptSignup asks for email and a confirmed password, then signs up.
func (a *App) PromptSignup(ctx context.Context) error {
	fmt.Fprintln(a.Out, "\n✨ Sign Up")
	email, err := a.prompt("Email: ")
	if err != nil {
		return err
	}
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.prompt("Confirm Password: ")
	if err != nil {
		return err
	}
	return a.Signup(ctx, email, password, confirm)
}

func (a *App) mainMenu(ctx context.Context) error {
	for {
		fmt.Fprintf(a.Out, "\n%s\n\n", banner)
		if credits, err := a.Ledger.Balance(ctx, a.Record.APIKey); err == nil {
			fmt.Fprintf(a.Out, "💎 Balance: %d credits | 👤 %s\n\n", credits, a.Record.Email)
		}
		fmt.Fprintln(a.Out, "[1] 📖 Get Review")
		fmt.Fprintln(a.Out, "[2] ℹ️  Book Information")
		fmt.Fprintln(a.Out, "[3] 📚 Similar Books")
		fmt.Fprintln(a.Out, "[4] 💳 Check Balance")
		fmt.Fprintln(a.Out, "[5] 🧾 History")
		fmt.Fprintln(a.Out, "[6] ⬆️  Upgrade Plan")
		fmt.Fprintln(a.Out, "[7] 🚪 Logout")
		fmt.Fprintln(a.Out, "[8] ❌ Exit")
		choice, err := a.prompt("\n> ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = a.queryAction(ctx, "Enter book title or ISBN: ", a.Review)
		case "2":
			err = a.queryAction(ctx, "Enter book title or ISBN: ", a.Info)
		case "3":
			err = a.queryAction(ctx, "Enter book title or author name: ", a.Similar)
		case "4":
			err = a.Balance(ctx)
		case "5":
			err = a.History(ctx, 1)
		case "6":
			a.Plans()
		case "7":
			return a.Logout()
		case "8":
			fmt.Fprintln(a.Out, "\nGoodbye! Happy reading! 📚")
			return nil
		default:
			fmt.Fprintln(a.Out, "\n❌ Invalid choice!")
			continue
		}
		if errors.Is(err, io.EOF) {
			return err
		}
		if err != nil {
			a.fail(err)
		}
		a.pause()
	}
}

// queryAction asks for a query and runs action on it; an empty answer goes
// back to the menu.
func (a *App) queryAction(ctx context.Context, label string, action func(context.Context, string) error) error {
	query, err := a.prompt(label)
	if err != nil || query == "" {
		return err
	}
	return action(ctx, query)
}
