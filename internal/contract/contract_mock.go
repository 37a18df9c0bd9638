package contract

import (
	"context"
	"time"

	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitHubClient is a mock implementation of GitHubClient for testing.
type MockGitHubClient struct {
	mock.Mock
}

var _ GitHubClient = &MockGitHubClient{} // Compile-time check

// GetRepoMeta implements the GitHubClient interface.
func (m *MockGitHubClient) GetRepoMeta(ctx context.Context, owner, repo string) (*schema.RepoMetadata, error) {
	args := m.Called(ctx, owner, repo)
	meta, _ := args.Get(0).(*schema.RepoMetadata)
	return meta, args.Error(1)
}

// GetBranchHead implements the GitHubClient interface.
func (m *MockGitHubClient) GetBranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	args := m.Called(ctx, owner, repo, branch)
	return args.String(0), args.Error(1)
}

// GetCommitTree implements the GitHubClient interface.
func (m *MockGitHubClient) GetCommitTree(ctx context.Context, owner, repo, commitSHA string) (string, error) {
	args := m.Called(ctx, owner, repo, commitSHA)
	return args.String(0), args.Error(1)
}

// GetTreeRecursive implements the GitHubClient interface.
func (m *MockGitHubClient) GetTreeRecursive(ctx context.Context, owner, repo, treeSHA string) (*schema.RepoTree, error) {
	args := m.Called(ctx, owner, repo, treeSHA)
	tree, _ := args.Get(0).(*schema.RepoTree)
	return tree, args.Error(1)
}

// GetFileContent implements the GitHubClient interface.
func (m *MockGitHubClient) GetFileContent(ctx context.Context, owner, repo, path, ref string) (*schema.FileContent, error) {
	args := m.Called(ctx, owner, repo, path, ref)
	fc, _ := args.Get(0).(*schema.FileContent)
	return fc, args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginScan implements the HistoryStore interface.
func (m *MockHistoryStore) BeginScan(startTime time.Time, owner, repo, branch string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, owner, repo, branch, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndScan implements the HistoryStore interface.
func (m *MockHistoryStore) EndScan(scanID int64, endTime time.Time, report *schema.ScanReport) error {
	args := m.Called(scanID, endTime, report)
	return args.Error(0)
}

// RecordFinding implements the HistoryStore interface.
func (m *MockHistoryStore) RecordFinding(scanID int64, finding schema.SmellFinding) error {
	args := m.Called(scanID, finding)
	return args.Error(0)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns(limit int) ([]schema.ScanRun, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.ScanRun)
	return runs, args.Error(1)
}

// ListFindings implements the HistoryStore interface.
func (m *MockHistoryStore) ListFindings() ([]schema.ScanFinding, error) {
	args := m.Called()
	findings, _ := args.Get(0).([]schema.ScanFinding)
	return findings, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
