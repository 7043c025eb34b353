// Package config loads horae's configuration file. The file is JSONC
// (JSON with comments and trailing commas) so hand-edited configs stay
// forgiving; precedence is defaults, then the config file, then
// environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/horae/internal/timegrid"
	"github.com/tailscale/hujson"
)

// FileName is the config file looked up in the working directory.
const FileName = ".horae.json"

// Config holds all configuration options.
type Config struct {
	// StoreURL selects the remote artifact store. Empty means the
	// local SQLite store at DBPath is used instead.
	StoreURL  string `json:"store_url,omitempty"`
	AuthToken string `json:"auth_token,omitempty"`
	DBPath    string `json:"db_path,omitempty"`

	// ScheduleKey and WBSKey are the artifact keys for the schedule
	// document and the importable work breakdown structure.
	ScheduleKey string `json:"schedule_key,omitempty"`
	WBSKey      string `json:"wbs_key,omitempty"`

	// ProjectStart/ProjectFinish bound the schedule, as YYYY-MM-DD.
	ProjectStart  string `json:"project_start,omitempty"`
	ProjectFinish string `json:"project_finish,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DBPath:      defaultDBPath(),
		ScheduleKey: "schedule",
		WBSKey:      "wbs",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "horae.db"
	}
	return filepath.Join(home, ".horae", "horae.db")
}

// Load reads the config file at workDir (or the explicit path when
// non-empty), merges it over the defaults, then applies environment
// overrides. A missing default file is not an error; a missing explicit
// file is.
func Load(workDir, explicitPath string) (Config, error) {
	cfg := Default()

	path := explicitPath
	mustExist := explicitPath != ""
	if path == "" {
		path = filepath.Join(workDir, FileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		fileCfg, parseErr := parse(data)
		if parseErr != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, parseErr)
		}
		cfg = merge(cfg, fileCfg)
	case os.IsNotExist(err) && !mustExist:
		// No file, defaults stand.
	default:
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.StoreURL != "" {
		base.StoreURL = overlay.StoreURL
	}
	if overlay.AuthToken != "" {
		base.AuthToken = overlay.AuthToken
	}
	if overlay.DBPath != "" {
		base.DBPath = overlay.DBPath
	}
	if overlay.ScheduleKey != "" {
		base.ScheduleKey = overlay.ScheduleKey
	}
	if overlay.WBSKey != "" {
		base.WBSKey = overlay.WBSKey
	}
	if overlay.ProjectStart != "" {
		base.ProjectStart = overlay.ProjectStart
	}
	if overlay.ProjectFinish != "" {
		base.ProjectFinish = overlay.ProjectFinish
	}
	return base
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HORAE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HORAE_STORE_URL"); v != "" {
		cfg.StoreURL = v
	}
	if v := os.Getenv("HORAE_AUTH_TOKEN"); v != "" {
		cfg.AuthToken = v
	}
}

func validate(cfg Config) error {
	if cfg.ScheduleKey == "" {
		return fmt.Errorf("schedule_key must not be empty")
	}
	if cfg.ProjectStart != "" {
		if _, ok := timegrid.ParseDate(cfg.ProjectStart); !ok {
			return fmt.Errorf("project_start %q is not a valid YYYY-MM-DD date", cfg.ProjectStart)
		}
	}
	if cfg.ProjectFinish != "" {
		if _, ok := timegrid.ParseDate(cfg.ProjectFinish); !ok {
			return fmt.Errorf("project_finish %q is not a valid YYYY-MM-DD date", cfg.ProjectFinish)
		}
	}
	return nil
}
