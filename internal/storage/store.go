package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/step"
	"gopkg.in/yaml.v3"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.json"
	csvFile      = "steps.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrFormat      = errors.New("storage: unsupported format")
)

// Store keeps saved runs, one directory per run, under a base directory.
type Store struct {
	baseDir string
	log     *slog.Logger
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, log: logging.NewNop(), now: time.Now}
}

// WithLogger sets the logger used for save and skip messages.
func (s *Store) WithLogger(log *slog.Logger) *Store {
	s.log = log
	return s
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string         `json:"id" yaml:"id"`
	Algorithm string         `json:"algorithm" yaml:"algorithm"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Data      []step.Value   `json:"data" yaml:"data"`
	Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Steps     int            `json:"steps" yaml:"steps"`
	// Result is the last "result" variable of the sequence, if any.
	Result string `json:"result,omitempty" yaml:"result,omitempty"`
}

// Run is a saved sequence together with the data it was generated from.
type Run struct {
	Meta     RunMetadata   `json:"meta" yaml:"meta"`
	Sequence step.Sequence `json:"sequence" yaml:"sequence"`
}

// Save writes a run and returns its ID.
func (s *Store) Save(algorithm string, data []step.Value, params map[string]any, seq step.Sequence) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("%s_%d", algorithm, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Algorithm: algorithm,
		Timestamp: now,
		Data:      step.CloneValues(data),
		Params:    params,
		Steps:     len(seq),
		Result:    FinalResult(seq),
	}

	if err := writeJSONFile(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeJSONFile(filepath.Join(runDir, stepsFile), seq); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, csvFile))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteCSV(f, seq); err != nil {
		return "", err
	}

	s.log.Info("saved run", "id", runID, "algorithm", algorithm, "steps", len(seq))
	return runID, nil
}

// List returns every readable run, oldest first. Unreadable directories are
// skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug("skipping run directory", "dir", entry.Name(), "error", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadRun reads a run's metadata and sequence.
func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	seq, err := ReadSequence(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	return &Run{Meta: *meta, Sequence: seq}, nil
}

// ReadSequence decodes a sequence file. The format follows the extension:
// .json, .yaml or .yml. A file holding a whole Run is accepted as well.
func ReadSequence(path string) (step.Sequence, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seq step.Sequence
	var run Run
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &seq); err != nil {
			if rerr := json.Unmarshal(raw, &run); rerr != nil {
				return nil, fmt.Errorf("storage: decode %s: %w", path, err)
			}
			seq = run.Sequence
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &seq); err != nil {
			if rerr := yaml.Unmarshal(raw, &run); rerr != nil {
				return nil, fmt.Errorf("storage: decode %s: %w", path, err)
			}
			seq = run.Sequence
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, path)
	}
	return seq, nil
}

// FinalResult returns the last "result" variable set by seq.
func FinalResult(seq step.Sequence) string {
	for i := len(seq) - 1; i >= 0; i-- {
		if v, ok := seq[i].Variables["result"]; ok {
			return v.String()
		}
	}
	return ""
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, v)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
