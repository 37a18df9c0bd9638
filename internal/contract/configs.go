package contract

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shreyashpatel5506/smellscan/schema"
)

// Default values for configuration.
const (
	DefaultPrecision       = 1
	DefaultScanTTLMin      = 30
	DefaultImmutableTTLMin = 60
)

// Config holds the runtime configuration for a scan.
// This struct is the final, validated config; raw inputs from flags, env and
// config file land in ConfigRawInput first.
type Config struct {
	Owner  string
	Repo   string
	Branch string // empty means the repository's default branch
	Token  string
	Plan   schema.PlanTier
	Limits schema.ScanLimits

	MinSeverity schema.Severity // empty means no display filtering
	Output      schema.OutputMode
	OutputFile  string
	Precision   int
	Width       int // terminal width override (0 = auto-detect)
	Color       bool

	ScanTTL      time.Duration
	ImmutableTTL time.Duration

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string
}

// Clone returns a copy of the config that tool handlers can mutate
// without touching the base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw, unvalidated inputs from all sources.
// Viper unmarshals into this struct; the positional repository argument is
// assigned by the command layer.
type ConfigRawInput struct {
	RepoStr          string
	Branch           string `mapstructure:"branch"`
	Token            string `mapstructure:"token"`
	Plan             string `mapstructure:"plan"`
	MinSeverity      string `mapstructure:"min-severity"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	ScanTTLMin       int    `mapstructure:"scan-ttl"`
	ImmutableTTLMin  int    `mapstructure:"immutable-ttl"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config. The repository target is optional here;
// commands that need one call RequireRepoTarget afterwards.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Repository target ---
	if input.RepoStr != "" {
		owner, repo, err := SplitRepoArg(input.RepoStr)
		if err != nil {
			return err
		}
		cfg.Owner = owner
		cfg.Repo = repo
	}
	cfg.Branch = strings.TrimSpace(input.Branch)

	// --- 2. Token resolution: flag/env SMELLSCAN_TOKEN, then GITHUB_TOKEN ---
	cfg.Token = input.Token
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}

	// --- 3. Plan tier and derived limits ---
	cfg.Plan = schema.PlanTier(strings.ToLower(input.Plan))
	if cfg.Plan == "" {
		cfg.Plan = schema.FreeTier
	}
	if _, ok := schema.ValidPlanTiers[cfg.Plan]; !ok {
		return &ValidationError{Field: "plan", Reason: fmt.Sprintf("'%s' must be free, pro or enterprise", input.Plan)}
	}
	cfg.Limits = schema.GetScanLimits(cfg.Plan)

	// --- 4. Output format and display options ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return &ValidationError{Field: "output", Reason: fmt.Sprintf("'%s' must be text, csv or json", input.Output)}
	}
	cfg.OutputFile = input.OutputFile

	if input.MinSeverity != "" {
		sev := schema.Severity(strings.ToLower(input.MinSeverity))
		if schema.SeverityRank(sev) > 2 {
			return &ValidationError{Field: "min-severity", Reason: fmt.Sprintf("'%s' must be high, medium or low", input.MinSeverity)}
		}
		cfg.MinSeverity = sev
	}

	if input.Precision < 1 || input.Precision > 2 {
		return &ValidationError{Field: "precision", Reason: fmt.Sprintf("must be 1 or 2 (received %d)", input.Precision)}
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return &ValidationError{Field: "width", Reason: "cannot be negative"}
	}
	cfg.Width = input.Width
	cfg.Color = parseBool(input.Color)

	// --- 5. Cache TTLs ---
	if input.ScanTTLMin <= 0 || input.ImmutableTTLMin <= 0 {
		return &ValidationError{Field: "scan-ttl/immutable-ttl", Reason: "must be positive minutes"}
	}
	cfg.ScanTTL = time.Duration(input.ScanTTLMin) * time.Minute
	cfg.ImmutableTTL = time.Duration(input.ImmutableTTLMin) * time.Minute

	// --- 6. History backend ---
	backend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return &ValidationError{Field: "history-backend", Reason: fmt.Sprintf("'%s' must be sqlite, mysql, postgresql or none", input.HistoryBackend)}
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	return nil
}

// RequireRepoTarget verifies that a repository target was provided.
func RequireRepoTarget(cfg *Config) error {
	if cfg.Owner == "" || cfg.Repo == "" {
		return &ValidationError{Field: "repository", Reason: "expected <owner>/<repo>"}
	}
	return nil
}

// SplitRepoArg parses an "owner/repo" positional argument.
func SplitRepoArg(arg string) (owner, repo string, err error) {
	parts := strings.Split(strings.Trim(arg, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &ValidationError{Field: "repository", Reason: fmt.Sprintf("'%s' must be <owner>/<repo>", arg)}
	}
	return parts[0], parts[1], nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "false", "0", "off":
		return false
	default:
		return true
	}
}
