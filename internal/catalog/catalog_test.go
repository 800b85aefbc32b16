package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSite struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

func (f *fakeSite) last() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func serveFixture(t *testing.T, w http.ResponseWriter, name string) {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	site := &fakeSite{}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "nothing":
			serveFixture(t, w, "empty.html")
		case "anon":
			serveFixture(t, w, "search_no_author.html")
		case "broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			serveFixture(t, w, "search.html")
		}
	})
	mux.HandleFunc("/book/show/44767458-dune", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "book.html")
	})
	mux.HandleFunc("/book/show/quiet", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "book_no_likes.html")
	})
	mux.HandleFunc("/book/show/none", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "empty.html")
	})
	site.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.mu.Lock()
		site.requests = append(site.requests, r)
		site.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(site.Close)
	return site
}

func newTestClient(t *testing.T, baseURL string, slept *[]time.Duration) *Client {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Sleep: func(d time.Duration) {
			if slept != nil {
				*slept = append(*slept, d)
			}
		},
	})
	require.NoError(t, err)
	return client
}

func TestDetectInputKind(t *testing.T) {
	testCases := []struct {
		input    string
		expected InputKind
	}{
		{"978-0-13-468599-1", KindISBN},
		{"0441172717", KindISBN},
		{"0 441 17271 7", KindISBN},
		{"Dune", KindTitle},
		{"123456789", KindTitle},
		{"044117271X", KindTitle},
		{"12345678901234", KindTitle},
		{"", KindTitle},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, DetectInputKind(tc.input), tc.input)
	}
}

func TestFindBook(t *testing.T) {
	site := newFakeSite(t)
	var slept []time.Duration
	client := newTestClient(t, site.URL, &slept)

	book, err := client.FindBook(context.Background(), "dune messiah", KindTitle)
	require.NoError(t, err)
	assert.Equal(t, "Dune (Dune, #1)", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, site.URL+"/book/show/44767458-dune?from_search=true", book.URL)
	assert.Equal(t, []time.Duration{DefaultSearchDelay}, slept)

	req := site.last()
	require.NotNil(t, req)
	assert.Equal(t, "dune messiah", req.URL.Query().Get("q"))
	assert.Empty(t, req.URL.Query().Get("search_type"))
	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
}

func TestFindBookByISBN(t *testing.T) {
	site := newFakeSite(t)
	client := newTestClient(t, site.URL, nil)

	_, err := client.FindBook(context.Background(), "978-0441172719", KindISBN)
	require.NoError(t, err)

	req := site.last()
	require.NotNil(t, req)
	assert.Equal(t, "978-0441172719", req.URL.Query().Get("q"))
	assert.Equal(t, "books", req.URL.Query().Get("search_type"))
}

func TestFindBookDefaultsAuthor(t *testing.T) {
	site := newFakeSite(t)
	client := newTestClient(t, site.URL, nil)

	book, err := client.FindBook(context.Background(), "anon", KindTitle)
	require.NoError(t, err)
	assert.Equal(t, "Anonymous Verses", book.Title)
	assert.Equal(t, "Unknown", book.Author)
	assert.Equal(t, "https://www.example.org/book/show/9", book.URL)
}

func TestFindBookNotFound(t *testing.T) {
	site := newFakeSite(t)
	client := newTestClient(t, site.URL, nil)
	ctx := context.Background()

	_, err := client.FindBook(ctx, "nothing", KindTitle)
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.FindBook(ctx, "broken", KindTitle)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestFindBookNetworkFailure(t *testing.T) {
	site := newFakeSite(t)
	url := site.URL
	site.Close()

	client := newTestClient(t, url, nil)
	_, err := client.FindBook(context.Background(), "dune", KindTitle)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAuthorBooks(t *testing.T) {
	site := newFakeSite(t)
	var slept []time.Duration
	client := newTestClient(t, site.URL, &slept)

	books, err := client.FindAuthorBooks(context.Background(), "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, []AuthorBook{
		{Title: "Dune (Dune, #1)", Rating: "4.27 avg rating — 1,523,771 ratings"},
		{Title: "Dune Messiah (Dune, #2)", Rating: "3.90 avg rating — 341,233 ratings"},
		{Title: "Children of Dune", Rating: "No rating"},
	}, books)
	assert.Equal(t, []time.Duration{DefaultPageDelay}, slept)
	assert.Equal(t, "Frank Herbert", site.last().URL.Query().Get("q"))

	_, err = client.FindAuthorBooks(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrNoAuthorBooks)
}

func TestTopReview(t *testing.T) {
	site := newFakeSite(t)
	var slept []time.Duration
	client := newTestClient(t, site.URL, &slept)

	review, err := client.TopReview(context.Background(), site.URL+"/book/show/44767458-dune")
	require.NoError(t, err)
	assert.Equal(t, Review{Text: "The best book I read this year.", Likes: 7}, review)
	assert.Equal(t, []time.Duration{DefaultPageDelay}, slept)
}

func TestTopReviewDefaultsLikes(t *testing.T) {
	site := newFakeSite(t)
	client := newTestClient(t, site.URL, nil)

	review, err := client.TopReview(context.Background(), site.URL+"/book/show/quiet")
	require.NoError(t, err)
	assert.Equal(t, Review{Text: "First.", Likes: 0}, review)
}

func TestTopReviewNotFound(t *testing.T) {
	site := newFakeSite(t)
	client := newTestClient(t, site.URL, nil)
	ctx := context.Background()

	_, err := client.TopReview(ctx, site.URL+"/book/show/none")
	assert.ErrorIs(t, err, ErrNoReviews)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.TopReview(ctx, site.URL+"/book/show/missing")
	assert.ErrorIs(t, err, ErrNoReviews)
}

func TestPickTopReviewStableTieBreak(t *testing.T) {
	reviews := []Review{
		{Text: "a", Likes: 3},
		{Text: "b", Likes: 7},
		{Text: "c", Likes: 7},
		{Text: "d", Likes: 1},
	}
	top, ok := PickTopReview(reviews)
	require.True(t, ok)
	assert.Equal(t, "b", top.Text)

	_, ok = PickTopReview(nil)
	assert.False(t, ok)
}

func TestParseLikes(t *testing.T) {
	assert.Equal(t, 12, parseLikes("12 likes"))
	assert.Equal(t, 3, parseLikes("liked by 3 of 40"))
	assert.Equal(t, 0, parseLikes("likes"))
	assert.Equal(t, 0, parseLikes(""))
	assert.Equal(t, 0, parseLikes("99999999999999999999999 likes"))
}

func TestNewClientRejectsRelativeBase(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "/relative"})
	assert.Error(t, err)
}
