package telemetry

import (
	"fallingup/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// flushEvery bounds how many records are buffered before hitting the CSV file.
const flushEvery = 256

// Recorder collects tick records for one run and streams them to an
// OutputManager when one is attached.
type Recorder struct {
	RunID uuid.UUID
	Scene string

	records []Record
	pending int
	out     *OutputManager
	logger  zerolog.Logger
}

// NewRecorder starts a run. dir may be empty to keep records in memory only.
func NewRecorder(scene, dir string, cfg *config.Config) (*Recorder, error) {
	out, err := NewOutputManager(dir)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		if err := out.WriteConfig(cfg); err != nil {
			out.Close()
			return nil, err
		}
	}

	id := uuid.New()
	r := &Recorder{
		RunID:  id,
		Scene:  scene,
		out:    out,
		logger: log.With().Str("category", "telemetry").Str("run", id.String()).Logger(),
	}
	r.logger.Debug().Str("scene", scene).Str("dir", out.Dir()).Msg("recording")
	return r, nil
}

// Record appends one tick.
func (r *Recorder) Record(s Sample) error {
	r.records = append(r.records, newRecord(r.RunID, s))
	r.pending++
	if r.pending >= flushEvery {
		return r.flush()
	}
	return nil
}

func (r *Recorder) flush() error {
	if r.pending == 0 {
		return nil
	}
	batch := r.records[len(r.records)-r.pending:]
	r.pending = 0
	return r.out.WriteRecords(batch)
}

// Records returns everything recorded so far.
func (r *Recorder) Records() []Record {
	return r.records
}

// Summary summarizes the records so far.
func (r *Recorder) Summary() Summary {
	s := Summarize(r.records)
	s.RunID = r.RunID.String()
	s.Scene = r.Scene
	return s
}

// Close flushes pending records, writes the summary and closes the output.
func (r *Recorder) Close() (Summary, error) {
	summary := r.Summary()
	if err := r.flush(); err != nil {
		r.out.Close()
		return summary, err
	}
	if err := r.out.WriteSummary(summary); err != nil {
		r.out.Close()
		return summary, err
	}

	r.logger.Info().
		Int("ticks", summary.Ticks).
		Int("flips", summary.Flips).
		Int("near_misses", summary.NearMisses).
		Float64("distance", summary.Distance).
		Msg("run finished")
	return summary, r.out.Close()
}
