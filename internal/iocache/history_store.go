// Package iocache is for durable scan history storage.
package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
)

const (
	runsTable     = "scan_runs"
	findingsTable = "scan_findings"

	// storedTimeFormat keeps timestamps portable across all backends.
	storedTimeFormat = time.RFC3339
)

// HistoryStoreImpl records scan runs and findings using various
// database backends.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore initializes and returns a new HistoryStore based on the backend type.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite history at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		connStr = dbPath

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL history: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL history: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// No-op store for disabled history tracking
		return &HistoryStoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	for _, query := range createTableQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create history tables: %w", err)
		}
	}

	return &HistoryStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// createTableQueries returns the CREATE TABLE statements for the given backend.
func createTableQueries(backend schema.DatabaseBackend) []string {
	var runsID, findingsFK string
	switch backend {
	case schema.MySQLBackend:
		runsID = "id BIGINT AUTO_INCREMENT PRIMARY KEY"
		findingsFK = "scan_id BIGINT NOT NULL"
	case schema.PostgreSQLBackend:
		runsID = "id BIGSERIAL PRIMARY KEY"
		findingsFK = "scan_id BIGINT NOT NULL"
	default: // SQLite
		runsID = "id INTEGER PRIMARY KEY AUTOINCREMENT"
		findingsFK = "scan_id INTEGER NOT NULL"
	}

	runs := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s,
			owner VARCHAR(255) NOT NULL,
			repo VARCHAR(255) NOT NULL,
			branch VARCHAR(255) NOT NULL,
			commit_sha VARCHAR(64),
			started_at VARCHAR(64) NOT NULL,
			completed_at VARCHAR(64),
			files_analyzed INTEGER NOT NULL DEFAULT 0,
			total_smells INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			config_params TEXT
		);
	`, runsTable, runsID)

	findings := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s,
			file VARCHAR(512) NOT NULL,
			rule_id VARCHAR(64) NOT NULL,
			category VARCHAR(32) NOT NULL,
			severity VARCHAR(16) NOT NULL,
			line_start INTEGER NOT NULL,
			line_end INTEGER NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			message TEXT
		);
	`, findingsTable, findingsFK)

	return []string{runs, findings}
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (hs *HistoryStoreImpl) rebind(query string) string {
	if hs.backend != schema.PostgreSQLBackend {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginScan creates a new scan run record and returns its unique ID.
func (hs *HistoryStoreImpl) BeginScan(startTime time.Time, owner, repo, branch string, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var scanID int64
	started := startTime.UTC().Format(storedTimeFormat)
	if hs.backend == schema.PostgreSQLBackend {
		query := fmt.Sprintf(`INSERT INTO %s (owner, repo, branch, started_at, config_params) VALUES ($1, $2, $3, $4, $5) RETURNING id`, runsTable)
		err = hs.db.QueryRow(query, owner, repo, branch, started, string(configJSON)).Scan(&scanID)
	} else {
		query := fmt.Sprintf(`INSERT INTO %s (owner, repo, branch, started_at, config_params) VALUES (?, ?, ?, ?, ?)`, runsTable)
		var result sql.Result
		result, err = hs.db.Exec(query, owner, repo, branch, started, string(configJSON))
		if err == nil {
			scanID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan run: %w", err)
	}
	return scanID, nil
}

// EndScan updates the scan run with completion data from the report.
func (hs *HistoryStoreImpl) EndScan(scanID int64, endTime time.Time, report *schema.ScanReport) error {
	if hs.disabled() {
		return nil
	}
	failed := 0
	if report.Failed() {
		failed = 1
	}
	query := hs.rebind(fmt.Sprintf(`
		UPDATE %s SET completed_at = ?, commit_sha = ?, files_analyzed = ?, total_smells = ?, failed = ?
		WHERE id = ?`, runsTable))
	_, err := hs.db.Exec(query,
		endTime.UTC().Format(storedTimeFormat),
		report.CommitSHA,
		report.Statistics.FilesAnalyzed,
		report.Statistics.TotalSmells,
		failed,
		scanID)
	if err != nil {
		return fmt.Errorf("failed to update scan run: %w", err)
	}
	return nil
}

// RecordFinding persists one finding under a scan run.
func (hs *HistoryStoreImpl) RecordFinding(scanID int64, finding schema.SmellFinding) error {
	if hs.disabled() {
		return nil
	}
	query := hs.rebind(fmt.Sprintf(`
		INSERT INTO %s (scan_id, file, rule_id, category, severity, line_start, line_end, confidence, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, findingsTable))
	_, err := hs.db.Exec(query,
		scanID, finding.File, string(finding.ID), string(finding.Category), string(finding.Severity),
		finding.LineStart, finding.LineEnd, finding.Confidence, finding.Message)
	if err != nil {
		return fmt.Errorf("failed to insert finding: %w", err)
	}
	return nil
}

// ListRuns returns recorded scan runs, newest first. A non-positive
// limit returns everything.
func (hs *HistoryStoreImpl) ListRuns(limit int) ([]schema.ScanRun, error) {
	if hs.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT id, owner, repo, branch, COALESCE(commit_sha, ''), started_at, completed_at,
			files_analyzed, total_smells, failed, COALESCE(config_params, '')
		FROM %s ORDER BY id DESC`, runsTable)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.ScanRun
	for rows.Next() {
		var run schema.ScanRun
		var started string
		var completed sql.NullString
		var failed int
		if err := rows.Scan(&run.ID, &run.Owner, &run.Repo, &run.Branch, &run.CommitSHA,
			&started, &completed, &run.FilesAnalyzed, &run.TotalSmells, &failed, &run.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.StartedAt, _ = time.Parse(storedTimeFormat, started)
		if completed.Valid && completed.String != "" {
			if t, perr := time.Parse(storedTimeFormat, completed.String); perr == nil {
				run.CompletedAt = &t
			}
		}
		run.Failed = failed != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListFindings returns every persisted finding, oldest scan first.
func (hs *HistoryStoreImpl) ListFindings() ([]schema.ScanFinding, error) {
	if hs.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT scan_id, file, rule_id, category, severity, line_start, line_end, confidence, COALESCE(message, '')
		FROM %s ORDER BY scan_id ASC`, findingsTable)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []schema.ScanFinding
	for rows.Next() {
		var f schema.ScanFinding
		var ruleID, category, severity string
		if err := rows.Scan(&f.ScanID, &f.File, &ruleID, &category, &severity,
			&f.LineStart, &f.LineEnd, &f.Confidence, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan finding row: %w", err)
		}
		f.RuleID = schema.SmellID(ruleID)
		f.Category = schema.Category(category)
		f.Severity = schema.Severity(severity)
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// GetStatus summarizes the history store contents.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{Backend: hs.backend, Location: hs.connStr}
	if hs.disabled() {
		return status, nil
	}
	if err := hs.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to count scan runs: %w", err)
	}
	if err := hs.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, findingsTable)).Scan(&status.TotalFindings); err != nil {
		return status, fmt.Errorf("failed to count findings: %w", err)
	}
	if status.TotalRuns > 0 {
		var oldest, newest string
		query := fmt.Sprintf(`SELECT MIN(started_at), MAX(started_at) FROM %s`, runsTable)
		if err := hs.db.QueryRow(query).Scan(&oldest, &newest); err == nil {
			if t, perr := time.Parse(storedTimeFormat, oldest); perr == nil {
				status.OldestRun = &t
			}
			if t, perr := time.Parse(storedTimeFormat, newest); perr == nil {
				status.NewestRun = &t
			}
		}
	}
	return status, nil
}

// Clear removes all recorded runs and findings.
func (hs *HistoryStoreImpl) Clear() error {
	if hs.disabled() {
		return nil
	}
	for _, table := range []string{findingsTable, runsTable} {
		if _, err := hs.db.Exec(fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db == nil {
		return nil
	}
	return hs.db.Close()
}
