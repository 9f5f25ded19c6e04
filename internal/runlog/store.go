package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunMetadata records what a run was configured with and how it ended, the
// summary a `list` command reads back without replaying the run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Final     map[string]float64 `json:"final_diagnostics"`
}

// Store persists RunMetadata under a per-run directory beneath baseDir.
type Store struct {
	baseDir string
}

// NewStore returns a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates baseDir if it does not already exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunDir returns the directory a given run's files live under, whether or
// not it has been created yet.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Save writes metadata.json under a fresh run directory named from the scenario
// and current time, and returns the run ID.
func (s *Store) Save(scenario, preset string, seed int64, dt, duration float64, steps int, final map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("runlog: create run dir: %w", err)
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Steps:     steps,
		Final:     final,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	f, err := os.Create(metaPath)
	if err != nil {
		return "", fmt.Errorf("runlog: create metadata: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("runlog: encode metadata: %w", err)
	}
	return runID, nil
}

// List returns metadata for every run directory under baseDir, skipping
// entries that do not carry a readable metadata.json.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, fmt.Errorf("runlog: list %s: %w", s.baseDir, err)
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load reads a single run's metadata by ID.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("runlog: read %s: %w", metaPath, err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("runlog: parse %s: %w", metaPath, err)
	}
	return &meta, nil
}
