// Package shell drives the reading companion: it ties the stored credential,
// the ledger service and the catalog scraper together behind the actions the
// CLI exposes, both as one-shot commands and as an interactive menu.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"literary_voice/internal/catalog"
	"literary_voice/internal/credentials"
	"literary_voice/internal/ledgerclient"
	"literary_voice/internal/review"

	"github.com/sirupsen/logrus"
)

// Credit cost of each paid action.
const (
	CostReview  = 5
	CostInfo    = 1
	CostSimilar = 2
)

var (
	ErrNotLoggedIn      = errors.New("not logged in, run login or signup first")
	ErrEmptyQuery       = errors.New("empty query")
	ErrPasswordMismatch = errors.New("passwords don't match")
)

// Ledger is the part of the ledger service the shell uses.
type Ledger interface {
	Signup(ctx context.Context, email, password string) (ledgerclient.Account, error)
	Login(ctx context.Context, email, password string) (ledgerclient.Account, error)
	Balance(ctx context.Context, apiKey string) (int, error)
	Deduct(ctx context.Context, apiKey string, amount int, action string) (int, error)
	History(ctx context.Context, apiKey string, page, pageSize int) (ledgerclient.History, error)
	Health(ctx context.Context) error
}

// Catalog is the part of the scraper the shell uses.
type Catalog interface {
	FindBook(ctx context.Context, query string, kind catalog.InputKind) (catalog.Book, error)
	TopReview(ctx context.Context, detailURL string) (catalog.Review, error)
	FindAuthorBooks(ctx context.Context, author string) ([]catalog.AuthorBook, error)
}

// App is built once at startup and passed to every command.
type App struct {
	Ledger     Ledger
	Catalog    Catalog
	Store      *credentials.Store
	Classifier review.Classifier
	Record     credentials.Record
	Out        io.Writer

	in *bufio.Reader
}

// New loads the stored credential and returns a ready App.
func New(ledger Ledger, cat Catalog, store *credentials.Store, in io.Reader, out io.Writer) (*App, error) {
	rec, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return &App{
		Ledger:     ledger,
		Catalog:    cat,
		Store:      store,
		Classifier: review.NewKeywordClassifier(),
		Record:     rec,
		Out:        out,
		in:         bufio.NewReader(in),
	}, nil
}

func (a *App) requireLogin() error {
	if !a.Record.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

// keyed marks rejections of the stored api key so the user knows to sign in
// again.
func keyed(err error) error {
	if ledgerclient.IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("%w, run login again", err)
	}
	return err
}

// charge deducts amount for action and reports the remaining balance.
func (a *App) charge(ctx context.Context, amount int, action string) error {
	remaining, err := a.Ledger.Deduct(ctx, a.Record.APIKey, amount, action)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"amount": amount, "action": action}).Debug("deduct failed")
		return keyed(err)
	}
	logrus.WithFields(logrus.Fields{"amount": amount, "action": action, "remaining": remaining}).Debug("credits deducted")
	return nil
}

// prompt prints label and reads one trimmed line. io.EOF is returned as is
// so callers can stop.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.Out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) pause() {
	_, _ = a.prompt("\nPress Enter to continue...")
}
