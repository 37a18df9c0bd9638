package core

import (
	"context"
	"testing"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/repocache"
	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFetchContentsOrderAndErrors(t *testing.T) {
	ctx := context.Background()
	cache := repocache.New()
	mockClient := &contract.MockGitHubClient{}

	mockClient.On("GetFileContent", mock.Anything, "octo", "demo", "a.js", "main").
		Return(&schema.FileContent{Path: "a.js", Content: "let a = 1;", SHA: "sha-a"}, nil)
	mockClient.On("GetFileContent", mock.Anything, "octo", "demo", "b.js", "main").
		Return(nil, &contract.NotFoundError{Resource: "b.js"})
	mockClient.On("GetFileContent", mock.Anything, "octo", "demo", "c.js", "main").
		Return(&schema.FileContent{Path: "c.js", Content: "let c = 3;", SHA: "sha-c"}, nil)

	requests := []schema.FileRequest{
		{Path: "a.js", SHA: "sha-a"},
		{Path: "b.js", SHA: "sha-b"},
		{Path: "c.js", SHA: "sha-c"},
	}
	results, err := FetchContents(ctx, mockClient, cache, "octo", "demo", "main", requests)

	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "a.js", results[0].Path)
	assert.False(t, results[0].Failed())
	assert.Equal(t, "b.js", results[1].Path)
	assert.True(t, results[1].Failed())
	assert.Equal(t, "c.js", results[2].Path)
	mockClient.AssertExpectations(t)
}

func TestFetchContentsUsesSHACache(t *testing.T) {
	ctx := context.Background()
	cache := repocache.New()
	mockClient := &contract.MockGitHubClient{}

	mockClient.On("GetFileContent", mock.Anything, "octo", "demo", "a.js", "main").
		Return(&schema.FileContent{Path: "a.js", Content: "let a = 1;", SHA: "sha-a"}, nil).Once()

	requests := []schema.FileRequest{{Path: "a.js", SHA: "sha-a"}}

	first, err := FetchContents(ctx, mockClient, cache, "octo", "demo", "main", requests)
	assert.NoError(t, err)
	second, err := FetchContents(ctx, mockClient, cache, "octo", "demo", "main", requests)
	assert.NoError(t, err)

	assert.Equal(t, first[0].Content, second[0].Content)
	// Second round served entirely from the blob cache.
	mockClient.AssertNumberOfCalls(t, "GetFileContent", 1)
}

func TestFetchContentsFailedFetchNotCached(t *testing.T) {
	ctx := context.Background()
	cache := repocache.New()
	mockClient := &contract.MockGitHubClient{}

	mockClient.On("GetFileContent", mock.Anything, "octo", "demo", "a.js", "main").
		Return(nil, &contract.UpstreamError{StatusCode: 500, Msg: "boom"}).Once()
	mockClient.On("GetFileContent", mock.Anything, "octo", "demo", "a.js", "main").
		Return(&schema.FileContent{Path: "a.js", Content: "ok", SHA: "sha-a"}, nil).Once()

	requests := []schema.FileRequest{{Path: "a.js", SHA: "sha-a"}}

	first, err := FetchContents(ctx, mockClient, cache, "octo", "demo", "main", requests)
	assert.NoError(t, err)
	assert.True(t, first[0].Failed())

	second, err := FetchContents(ctx, mockClient, cache, "octo", "demo", "main", requests)
	assert.NoError(t, err)
	assert.False(t, second[0].Failed())
	mockClient.AssertNumberOfCalls(t, "GetFileContent", 2)
}

func TestFetchContentsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cache := repocache.New()
	mockClient := &contract.MockGitHubClient{}
	mockClient.On("GetFileContent", mock.Anything, "octo", "demo", "a.js", "main").
		Return(nil, context.Canceled).Maybe()

	_, err := FetchContents(ctx, mockClient, cache, "octo", "demo", "main", []schema.FileRequest{{Path: "a.js"}})
	assert.Error(t, err)
}
