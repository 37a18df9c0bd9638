package core

import (
	"context"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/repocache"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// FetchTree returns the recursive tree for a commit, cache-first. A
// cache hit on the commit key makes no upstream calls at all; a miss
// resolves the commit's root tree SHA and then lists it.
func FetchTree(ctx context.Context, client contract.GitHubClient, cache *repocache.Cache, owner, repo, commitSHA string) (*schema.RepoTree, error) {
	key := repocache.TreeKey(owner, repo, commitSHA)
	if tree, ok := cache.GetTree(key); ok {
		return tree, nil
	}
	treeSHA, err := client.GetCommitTree(ctx, owner, repo, commitSHA)
	if err != nil {
		return nil, err
	}
	tree, err := client.GetTreeRecursive(ctx, owner, repo, treeSHA)
	if err != nil {
		return nil, err
	}
	cache.SetTree(key, tree)
	return tree, nil
}
