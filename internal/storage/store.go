// Package storage persists headless run artifacts: metadata, a
// per-step diagnostic series and the final body registry.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/orbitlab/orbitsim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	System     string             `json:"system"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	ForcePower float64            `json:"force_power"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Sample is one row of the diagnostic series.
type Sample struct {
	Time            float64
	Energy          float64
	Px, Py          float64
	AngularMomentum float64
	Bodies          int
}

var seriesHeader = []string{"time", "energy", "px", "py", "angular_momentum", "bodies"}

// Save writes one run directory: metadata.json, series.csv and
// bodies.csv with the final registry state. Returns the run ID.
func (s *Store) Save(meta RunMetadata, series []Sample, final engine.Registry) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.System, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeSeries(filepath.Join(runDir, "series.csv"), series); err != nil {
		return "", err
	}
	if err := s.writeBodies(filepath.Join(runDir, "bodies.csv"), final); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeSeries(path string, series []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for _, row := range series {
		rec := []string{
			formatFloat(row.Time),
			formatFloat(row.Energy),
			formatFloat(row.Px),
			formatFloat(row.Py),
			formatFloat(row.AngularMomentum),
			strconv.Itoa(row.Bodies),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) writeBodies(path string, reg engine.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"name", "mass", "radius", "x", "y", "vx", "vy", "r", "g", "b"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, b := range reg {
		rec := []string{
			b.Name,
			formatFloat(b.Mass),
			formatFloat(b.Radius),
			formatFloat(b.Pos.X), formatFloat(b.Pos.Y),
			formatFloat(b.Vel.X), formatFloat(b.Vel.Y),
			strconv.Itoa(b.Colour.R), strconv.Itoa(b.Colour.G), strconv.Itoa(b.Colour.B),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns metadata for all stored runs, skipping unreadable
// entries.
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
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads the diagnostic series of a stored run.
func (s *Store) LoadSeries(runID string) ([]Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	series := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(seriesHeader) {
			return nil, fmt.Errorf("run %s: malformed series row", runID)
		}
		var row Sample
		if row.Time, err = strconv.ParseFloat(rec[0], 64); err != nil {
			return nil, err
		}
		if row.Energy, err = strconv.ParseFloat(rec[1], 64); err != nil {
			return nil, err
		}
		if row.Px, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, err
		}
		if row.Py, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, err
		}
		if row.AngularMomentum, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return nil, err
		}
		if row.Bodies, err = strconv.Atoi(rec[5]); err != nil {
			return nil, err
		}
		series = append(series, row)
	}
	return series, nil
}
