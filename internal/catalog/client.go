// Package catalog scrapes the book catalog site: search results, author
// listings and review blocks on detail pages. The page layout is an external
// contract that can change without notice; every failure to fetch or match
// is reported as a not-found outcome.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL   = "https://www.goodreads.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultTimeout   = 10 * time.Second

	// pacing before each request so the site does not flag us
	DefaultSearchDelay = 500 * time.Millisecond
	DefaultPageDelay   = time.Second
)

type Options struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	SearchDelay time.Duration
	PageDelay   time.Duration
	// Sleep replaces time.Sleep, tests pass a no-op.
	Sleep func(time.Duration)
}

type Client struct {
	http        *resty.Client
	base        *url.URL
	searchDelay time.Duration
	pageDelay   time.Duration
	sleep       func(time.Duration)
}

func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.SearchDelay == 0 {
		opts.SearchDelay = DefaultSearchDelay
	}
	if opts.PageDelay == 0 {
		opts.PageDelay = DefaultPageDelay
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("catalog base url must be absolute: %q", opts.BaseURL)
	}

	client := resty.New()
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml")
	client.SetTimeout(opts.Timeout)

	return &Client{
		http:        client,
		base:        base,
		searchDelay: opts.SearchDelay,
		pageDelay:   opts.PageDelay,
		sleep:       opts.Sleep,
	}, nil
}

// fetch waits for delay, then GETs link and parses the body.
func (c *Client) fetch(ctx context.Context, delay time.Duration, link string) (*goquery.Document, error) {
	c.sleep(delay)

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("GET %s: status %d", link, res.StatusCode())
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}

// resolve turns an href found on a page into an absolute URL.
func (c *Client) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return c.base.ResolveReference(ref).String(), nil
}
