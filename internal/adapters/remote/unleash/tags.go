package unleash

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

// FetchTags looks up the tag of tagType on each toggle. Toggles that do not
// exist yet, or carry no such tag, are absent from the result.
func (c *Client) FetchTags(ctx context.Context, tagType string, keys []string) (map[string]domain.Tag, error) {
	out := make(map[string]domain.Tag, len(keys))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			var resp tagsResponse
			err := c.do(gctx, http.MethodGet, featuresPath+"/"+escape(key)+"/tags", nil, &resp)
			if IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			for _, tag := range resp.Tags {
				if tag.Type != tagType {
					continue
				}
				tag.Key = key
				mu.Lock()
				out[key] = tag
				mu.Unlock()
				break
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTags attaches desired to key. When previous is set the two are
// swapped in one call.
func (c *Client) UpdateTags(ctx context.Context, key string, desired domain.Tag, previous *domain.Tag) error {
	path := featuresPath + "/" + escape(key) + "/tags"
	if previous == nil {
		return c.do(ctx, http.MethodPost, path, desired, nil)
	}
	body := tagUpdate{
		AddedTags:   []domain.Tag{desired},
		RemovedTags: []domain.Tag{*previous},
	}
	return c.do(ctx, http.MethodPut, path, body, nil)
}
