// Package history persists per-difficulty solve-run tallies: a Store with
// Load/LoadFrom/Save, generalized from tracking high-score entries to
// tracking solved/lost outcome counts.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Tally holds the outcome counts for one difficulty.
type Tally struct {
	Solved   int    `json:"solved"`
	Lost     int    `json:"lost"`
	LastRun  string `json:"last_run"`
	LastSeed uint64 `json:"last_seed"`
}

// Runs holds outcome tallies for every difficulty, keyed by its name
// (board.Difficulty.String()).
type Runs map[string]*Tally

// Store manages run-history persistence.
type Store struct {
	path string
	Runs Runs
}

// Load reads the history from the default location,
// ~/.minesweeper-solver/history.json.
func Load() (*Store, error) {
	return LoadFrom("")
}

// LoadFrom reads history from a specific path. If path is empty, uses the
// default location. A missing file is not an error: Load returns an empty
// Store.
func LoadFrom(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Store{Runs: Runs{}}, err
		}
		path = filepath.Join(home, ".minesweeper-solver", "history.json")
	}

	s := &Store{path: path, Runs: Runs{}}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is from UserHomeDir or test-controlled input
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s.Runs); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes the history to disk.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Runs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Record tallies one run's outcome for difficulty.
func (s *Store) Record(difficulty string, seed uint64, solved bool) {
	t := s.Runs[difficulty]
	if t == nil {
		t = &Tally{}
		s.Runs[difficulty] = t
	}
	if solved {
		t.Solved++
	} else {
		t.Lost++
	}
	t.LastRun = time.Now().Format(time.RFC3339)
	t.LastSeed = seed
}

// SuccessRate returns solved/(solved+lost) for difficulty, and false if no
// runs are recorded yet.
func (s *Store) SuccessRate(difficulty string) (float64, bool) {
	t := s.Runs[difficulty]
	if t == nil {
		return 0, false
	}
	total := t.Solved + t.Lost
	if total == 0 {
		return 0, false
	}
	return float64(t.Solved) / float64(total), true
}
