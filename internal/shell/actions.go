package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"literary_voice/internal/catalog"
	"literary_voice/internal/domain"
	"literary_voice/internal/review"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Paid actions charge only once every catalog step has succeeded, so a
// missing book, review or author listing never costs anything.

// Review prints the reformatted top review of the book matching query.
func (a *App) Review(ctx context.Context, query string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	book, err := a.findBook(ctx, query)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Out, "📖 Analyzing reviews...")
	top, err := a.Catalog.TopReview(ctx, book.URL)
	if err != nil {
		return err
	}

	if err := a.charge(ctx, CostReview, domain.ActionReview); err != nil {
		return err
	}
	fmt.Fprint(a.Out, review.Format(top.Text, book.Title, book.Author, a.Classifier))
	return nil
}

// Info prints the information card of the book matching query.
func (a *App) Info(ctx context.Context, query string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	book, err := a.findBook(ctx, query)
	if err != nil {
		return err
	}

	if err := a.charge(ctx, CostInfo, domain.ActionInfo); err != nil {
		return err
	}
	fmt.Fprint(a.Out, review.FormatInfo(book.Title, book.Author, book.URL))
	return nil
}

// Similar lists books by the author of the book matching query. When no
// book matches, query itself is taken as the author name.
func (a *App) Similar(ctx context.Context, query string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	author := query
	book, err := a.findBook(ctx, query)
	switch {
	case err == nil && book.Author != catalog.UnknownAuthor:
		author = book.Author
	case err != nil && !errors.Is(err, catalog.ErrNotFound):
		return err
	}

	fmt.Fprintf(a.Out, "🔍 Finding books by %s...\n", author)
	books, err := a.Catalog.FindAuthorBooks(ctx, author)
	if err != nil {
		return err
	}

	if err := a.charge(ctx, CostSimilar, domain.ActionSimilar); err != nil {
		return err
	}

	t := a.newTable()
	t.SetTitle("📚 Books by %s", author)
	t.AppendHeader(table.Row{"#", "Title", "Rating"})
	for i, b := range books {
		t.AppendRow(table.Row{i + 1, b.Title, "⭐ " + b.Rating})
	}
	t.Render()
	return nil
}

func (a *App) findBook(ctx context.Context, query string) (catalog.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return catalog.Book{}, ErrEmptyQuery
	}
	fmt.Fprintln(a.Out, "\n🔍 Searching the catalog...")
	return a.Catalog.FindBook(ctx, query, catalog.DetectInputKind(query))
}
