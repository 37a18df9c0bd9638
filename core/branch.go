package core

import (
	"context"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// ResolveBranch resolves the scan target to a concrete branch and head
// commit SHA. An empty selected branch means the repository's default
// branch; the name is never guessed, it comes from the repo metadata.
func ResolveBranch(ctx context.Context, client contract.GitHubClient, owner, repo, selected, defaultBranch string) (schema.BranchResolution, error) {
	target := selected
	if target == "" {
		target = defaultBranch
	}
	if target == "" {
		return schema.BranchResolution{}, &contract.BranchNotFoundError{Branch: "(default)"}
	}
	sha, err := client.GetBranchHead(ctx, owner, repo, target)
	if err != nil {
		return schema.BranchResolution{}, err
	}
	return schema.BranchResolution{
		Branch:        target,
		DefaultBranch: defaultBranch,
		SHA:           sha,
	}, nil
}
