package core

import (
	"context"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/repocache"
	"github.com/shreyashpatel5506/smellscan/schema"
	"golang.org/x/sync/errgroup"
)

// contentBatchSize bounds concurrent content requests against the API.
const contentBatchSize = 5

// FetchContents fetches file contents in batches of contentBatchSize,
// concurrent within a batch and sequential across batches. Results come
// back in request order. A failed fetch becomes a FileContent with its
// Error set rather than failing the whole batch; only context
// cancellation aborts early.
func FetchContents(ctx context.Context, client contract.GitHubClient, cache *repocache.Cache, owner, repo, ref string, requests []schema.FileRequest) ([]schema.FileContent, error) {
	results := make([]schema.FileContent, len(requests))
	for start := 0; start < len(requests); start += contentBatchSize {
		end := min(start+contentBatchSize, len(requests))
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = fetchOne(gctx, client, cache, owner, repo, ref, requests[i])
				return gctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// fetchOne resolves a single file, consulting the blob cache first.
func fetchOne(ctx context.Context, client contract.GitHubClient, cache *repocache.Cache, owner, repo, ref string, req schema.FileRequest) schema.FileContent {
	if req.SHA != "" {
		if cached, ok := cache.GetFile(repocache.FileKey(owner, repo, req.SHA)); ok {
			return *cached
		}
	}
	content, err := client.GetFileContent(ctx, owner, repo, req.Path, ref)
	if err != nil {
		return schema.FileContent{Path: req.Path, Error: err.Error()}
	}
	// Cache under the blob SHA from the tree listing. The response SHA
	// covers the rare case where the request carried none.
	sha := req.SHA
	if sha == "" {
		sha = content.SHA
	}
	if sha != "" {
		cache.SetFile(repocache.FileKey(owner, repo, sha), content)
	}
	return *content
}
