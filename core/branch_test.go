package core

import (
	"context"
	"testing"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveBranchSelected(t *testing.T) {
	mockClient := &contract.MockGitHubClient{}
	mockClient.On("GetBranchHead", mock.Anything, "octo", "demo", "develop").Return("sha1", nil)

	res, err := ResolveBranch(context.Background(), mockClient, "octo", "demo", "develop", "main")
	require.NoError(t, err)
	assert.Equal(t, "develop", res.Branch)
	assert.Equal(t, "main", res.DefaultBranch)
	assert.Equal(t, "sha1", res.SHA)
}

func TestResolveBranchFallsBackToDefault(t *testing.T) {
	mockClient := &contract.MockGitHubClient{}
	mockClient.On("GetBranchHead", mock.Anything, "octo", "demo", "main").Return("sha2", nil)

	res, err := ResolveBranch(context.Background(), mockClient, "octo", "demo", "", "main")
	require.NoError(t, err)
	assert.Equal(t, "main", res.Branch)
	assert.Equal(t, "sha2", res.SHA)
}

func TestResolveBranchNoDefault(t *testing.T) {
	mockClient := &contract.MockGitHubClient{}

	_, err := ResolveBranch(context.Background(), mockClient, "octo", "demo", "", "")
	var branchErr *contract.BranchNotFoundError
	require.ErrorAs(t, err, &branchErr)
	mockClient.AssertNotCalled(t, "GetBranchHead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveBranchNotFound(t *testing.T) {
	mockClient := &contract.MockGitHubClient{}
	mockClient.On("GetBranchHead", mock.Anything, "octo", "demo", "gone").
		Return("", &contract.BranchNotFoundError{Branch: "gone"})

	_, err := ResolveBranch(context.Background(), mockClient, "octo", "demo", "gone", "main")
	var branchErr *contract.BranchNotFoundError
	require.ErrorAs(t, err, &branchErr)
	assert.Equal(t, "gone", branchErr.Branch)
}
