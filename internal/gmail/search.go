package gmail

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSearchResults is the result count used when the caller
	// does not specify one.
	DefaultSearchResults = 10

	// MaxSearchResults bounds how many messages a single search call
	// will return.
	MaxSearchResults = 100

	// Detail fetches after a listing run concurrently; the limit keeps
	// us inside Gmail per-user rate limits.
	searchFetchConcurrency = 5
)

// Search lists messages matching the Gmail query and fetches envelope
// metadata for each hit. Metadata fetches run concurrently but results
// keep the order the listing returned them in.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]MessageSummary, error) {
	if maxResults <= 0 {
		maxResults = DefaultSearchResults
	}
	if maxResults > MaxSearchResults {
		maxResults = MaxSearchResults
	}

	list, err := c.svc.Messages.List("me").
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	summaries := make([]MessageSummary, len(list.Messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchFetchConcurrency)

	for i, m := range list.Messages {
		g.Go(func() error {
			msg, err := c.svc.Messages.Get("me", m.Id).
				Format("metadata").
				MetadataHeaders("From", "To", "Cc", "Subject", "Date").
				Context(gctx).
				Do()
			if err != nil {
				return fmt.Errorf("failed to fetch message %s: %w", m.Id, err)
			}

			summaries[i] = MessageSummary{
				ID:       msg.Id,
				ThreadID: msg.ThreadId,
				From:     HeaderValue(msg, "From"),
				To:       HeaderValue(msg, "To"),
				Subject:  HeaderValue(msg, "Subject"),
				Date:     HeaderValue(msg, "Date"),
				Snippet:  msg.Snippet,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}
