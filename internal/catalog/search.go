package catalog

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

type InputKind int

const (
	KindTitle InputKind = iota
	KindISBN
)

func (k InputKind) String() string {
	if k == KindISBN {
		return "isbn"
	}
	return "title"
}

// DetectInputKind reports ISBN when the input, minus hyphens and spaces, is
// 10 or 13 digits. Checksums are not validated.
func DetectInputKind(text string) InputKind {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(text)
	if len(cleaned) != 10 && len(cleaned) != 13 {
		return KindTitle
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return KindTitle
		}
	}
	return KindISBN
}

type Book struct {
	Title  string
	Author string
	URL    string
}

type AuthorBook struct {
	Title  string
	Rating string
}

const (
	UnknownAuthor  = "Unknown"
	noRating       = "No rating"
	maxAuthorBooks = 10
)

func (c *Client) searchURL(query string, kind InputKind) string {
	q := url.Values{}
	q.Set("q", query)
	if kind == KindISBN {
		q.Set("search_type", "books")
	}
	return c.base.ResolveReference(&url.URL{Path: "/search", RawQuery: q.Encode()}).String()
}

// collapse trims and squeezes inner whitespace of scraped text.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FindBook returns the first search result for query. Every failure,
// including network errors, comes back as ErrBookNotFound.
func (c *Client) FindBook(ctx context.Context, query string, kind InputKind) (Book, error) {
	log := logrus.WithFields(logrus.Fields{"query": query, "kind": kind.String()})

	doc, err := c.fetch(ctx, c.searchDelay, c.searchURL(query, kind))
	if err != nil {
		log.WithError(err).Debug("catalog search failed")
		return Book{}, ErrBookNotFound
	}

	book, ok := c.parseSearch(doc)
	if !ok {
		log.Debug("no book in search results")
		return Book{}, ErrBookNotFound
	}
	return book, nil
}

func (c *Client) parseSearch(doc *goquery.Document) (Book, bool) {
	link := doc.Find("a.bookTitle").First()
	if link.Length() == 0 {
		return Book{}, false
	}
	href, ok := link.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return Book{}, false
	}
	detail, err := c.resolve(strings.TrimSpace(href))
	if err != nil {
		return Book{}, false
	}

	author := UnknownAuthor
	if a := doc.Find("a.authorName").First(); a.Length() > 0 {
		if name := collapse(a.Text()); name != "" {
			author = name
		}
	}

	return Book{
		Title:  collapse(link.Text()),
		Author: author,
		URL:    detail,
	}, true
}

// FindAuthorBooks lists up to 10 books from the search results for author,
// in the order the site returns them.
func (c *Client) FindAuthorBooks(ctx context.Context, author string) ([]AuthorBook, error) {
	log := logrus.WithField("author", author)

	doc, err := c.fetch(ctx, c.pageDelay, c.searchURL(author, KindTitle))
	if err != nil {
		log.WithError(err).Debug("author search failed")
		return nil, ErrNoAuthorBooks
	}

	books := parseAuthorBooks(doc)
	if len(books) == 0 {
		return nil, ErrNoAuthorBooks
	}
	return books, nil
}

func parseAuthorBooks(doc *goquery.Document) []AuthorBook {
	var books []AuthorBook
	doc.Find(`tr[itemtype="http://schema.org/Book"]`).EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= maxAuthorBooks {
			return false
		}
		title := collapse(row.Find("a.bookTitle").First().Text())
		if title == "" {
			return true
		}
		rating := noRating
		if r := collapse(row.Find("span.minirating").First().Text()); r != "" {
			rating = r
		}
		books = append(books, AuthorBook{Title: title, Rating: rating})
		return true
	})
	return books
}
