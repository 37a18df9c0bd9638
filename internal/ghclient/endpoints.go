package ghclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
)

type repoResponse struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DefaultBranch string    `json:"default_branch"`
	Language      string    `json:"language"`
	Stargazers    int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	Topics        []string  `json:"topics"`
	Private       bool      `json:"private"`
	Archived      bool      `json:"archived"`
	Homepage      string    `json:"homepage"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Owner         struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// GetRepoMeta fetches repository metadata for the scan report header.
func (c *Client) GetRepoMeta(ctx context.Context, owner, repo string) (*schema.RepoMetadata, error) {
	var raw repoResponse
	path := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	visibility := "public"
	if raw.Private {
		visibility = "private"
	}
	return &schema.RepoMetadata{
		Name:          raw.Name,
		Description:   raw.Description,
		Owner:         raw.Owner.Login,
		Visibility:    visibility,
		DefaultBranch: raw.DefaultBranch,
		Language:      raw.Language,
		Stargazers:    raw.Stargazers,
		Forks:         raw.Forks,
		Topics:        raw.Topics,
		CreatedAt:     raw.CreatedAt,
		UpdatedAt:     raw.UpdatedAt,
		HomepageURL:   raw.Homepage,
		Archived:      raw.Archived,
	}, nil
}

type branchResponse struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// GetBranchHead resolves a branch name to its head commit SHA. A
// missing branch comes back as BranchNotFoundError so callers can
// distinguish it from a missing repository.
func (c *Client) GetBranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	var raw branchResponse
	path := fmt.Sprintf("/repos/%s/%s/branches/%s",
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(branch))
	if err := c.get(ctx, path, &raw); err != nil {
		var notFound *contract.NotFoundError
		if errors.As(err, &notFound) {
			return "", &contract.BranchNotFoundError{Branch: branch}
		}
		return "", err
	}
	return raw.Commit.SHA, nil
}

type commitResponse struct {
	Tree struct {
		SHA string `json:"sha"`
	} `json:"tree"`
}

// GetCommitTree returns the root tree SHA of a commit.
func (c *Client) GetCommitTree(ctx context.Context, owner, repo, commitSHA string) (string, error) {
	var raw commitResponse
	path := fmt.Sprintf("/repos/%s/%s/git/commits/%s",
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(commitSHA))
	if err := c.get(ctx, path, &raw); err != nil {
		return "", err
	}
	return raw.Tree.SHA, nil
}

type treeResponse struct {
	Truncated bool `json:"truncated"`
	Tree      []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
		Size int64  `json:"size"`
	} `json:"tree"`
}

// GetTreeRecursive fetches the full recursive tree for treeSHA,
// keeping blob and tree entries and tallying stats in one pass.
func (c *Client) GetTreeRecursive(ctx context.Context, owner, repo, treeSHA string) (*schema.RepoTree, error) {
	var raw treeResponse
	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1",
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(treeSHA))
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	tree := &schema.RepoTree{Entries: make([]schema.TreeEntry, 0, len(raw.Tree))}
	for _, entry := range raw.Tree {
		typ := schema.EntryType(entry.Type)
		if typ != schema.BlobEntry && typ != schema.DirEntry {
			continue
		}
		tree.Entries = append(tree.Entries, schema.TreeEntry{
			Path: entry.Path,
			Type: typ,
			SHA:  entry.SHA,
			Size: entry.Size,
		})
		tree.Stats.Total++
		switch typ {
		case schema.BlobEntry:
			tree.Stats.Blobs++
			tree.Stats.TotalSize += entry.Size
		case schema.DirEntry:
			tree.Stats.Trees++
		}
	}
	return tree, nil
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
}

// GetFileContent fetches and decodes one file at path for the given
// ref. Content arrives base64-encoded with embedded newlines; anything
// that fails to decode into valid UTF-8 is a DecodeError.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (*schema.FileContent, error) {
	var raw contentResponse
	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s?ref=%s",
		url.PathEscape(owner), url.PathEscape(repo), escapePath(path), url.QueryEscape(ref))
	if err := c.get(ctx, apiPath, &raw); err != nil {
		return nil, err
	}
	if raw.Encoding != "base64" {
		return nil, &contract.DecodeError{
			Path: path,
			Err:  fmt.Errorf("unexpected encoding %q", raw.Encoding),
		}
	}
	compact := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, raw.Content)
	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, &contract.DecodeError{Path: path, Err: err}
	}
	if !utf8.Valid(decoded) {
		return nil, &contract.DecodeError{Path: path, Err: errors.New("content is not valid utf-8")}
	}
	return &schema.FileContent{
		Path:      path,
		Content:   string(decoded),
		Size:      raw.Size,
		Extension: pathExtension(path),
		SHA:       raw.SHA,
		Encoding:  "utf-8",
	}, nil
}

// escapePath escapes each path segment separately so slashes survive.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// pathExtension returns the extension including the dot, or "".
func pathExtension(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}
	return base[idx:]
}
