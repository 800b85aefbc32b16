package catalog

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const maxReviews = 5

type Review struct {
	Text  string
	Likes int
}

var firstNumber = regexp.MustCompile(`\d+`)

// parseLikes returns the first integer in a like-count label, or 0.
func parseLikes(label string) int {
	m := firstNumber.FindString(label)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// TopReview fetches a detail page and returns its most liked review among
// the first five visible ones.
func (c *Client) TopReview(ctx context.Context, detailURL string) (Review, error) {
	log := logrus.WithField("url", detailURL)

	doc, err := c.fetch(ctx, c.pageDelay, detailURL)
	if err != nil {
		log.WithError(err).Debug("detail page fetch failed")
		return Review{}, ErrNoReviews
	}

	top, ok := PickTopReview(parseReviews(doc))
	if !ok {
		return Review{}, ErrNoReviews
	}
	return top, nil
}

func parseReviews(doc *goquery.Document) []Review {
	var reviews []Review
	doc.Find("div.review").EachWithBreak(func(i int, block *goquery.Selection) bool {
		if i >= maxReviews {
			return false
		}
		textSel := block.Find("span.readable").First()
		if textSel.Length() == 0 {
			return true
		}
		text := strings.TrimSpace(textSel.Text())
		if text == "" {
			return true
		}
		likes := 0
		if l := block.Find("span.likesCount").First(); l.Length() > 0 {
			likes = parseLikes(l.Text())
		}
		reviews = append(reviews, Review{Text: text, Likes: likes})
		return true
	})
	return reviews
}

// PickTopReview returns the review with the most likes; the earliest one
// wins a tie.
func PickTopReview(reviews []Review) (Review, bool) {
	if len(reviews) == 0 {
		return Review{}, false
	}
	best := reviews[0]
	for _, r := range reviews[1:] {
		if r.Likes > best.Likes {
			best = r
		}
	}
	return best, true
}
