package telemetry

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a run.
type Summary struct {
	RunID string `yaml:"run_id"`
	Scene string `yaml:"scene"`

	Ticks      int `yaml:"ticks"`
	AwakeTicks int `yaml:"awake_ticks"`
	Probes     int `yaml:"probes"`
	Hits       int `yaml:"hits"`
	Smoothed   int `yaml:"smoothed"`
	Flips      int `yaml:"flips"`
	NearMisses int `yaml:"near_misses"`

	// Dot statistics over near misses; zero when there were none.
	NearMissDotMean   float64 `yaml:"near_miss_dot_mean"`
	NearMissDotStdDev float64 `yaml:"near_miss_dot_stddev"`
	NearMissDotMin    float64 `yaml:"near_miss_dot_min"`

	// Distance is the path length travelled by the body.
	Distance     float64    `yaml:"distance"`
	MeanSpeed    float64    `yaml:"mean_speed"`
	FinalGravity [3]float32 `yaml:"final_gravity,flow"`
	Surfaces     []string   `yaml:"surfaces,flow"`
}

// Summarize computes run statistics from tick records.
func Summarize(records []Record) Summary {
	var s Summary
	s.Ticks = len(records)
	if len(records) == 0 {
		return s
	}

	var dots, speeds []float64
	seen := make(map[string]bool)
	for i, r := range records {
		if r.Awake {
			s.AwakeTicks++
		}
		if r.Probed {
			s.Probes++
		}
		if r.Hit {
			s.Hits++
			if r.Surface != "" && !seen[r.Surface] {
				seen[r.Surface] = true
				s.Surfaces = append(s.Surfaces, r.Surface)
			}
		}
		if r.Smoothed {
			s.Smoothed++
		}
		if r.Flipped {
			s.Flips++
		}
		if r.NearMiss() {
			s.NearMisses++
			dots = append(dots, float64(r.Dot))
		}
		speeds = append(speeds, float64(r.Speed))
		if i > 0 {
			s.Distance += float64(rl.Vector3Distance(records[i-1].Position(), r.Position()))
		}
	}

	if len(dots) > 0 {
		s.NearMissDotMean, s.NearMissDotStdDev = stat.MeanStdDev(dots, nil)
		if len(dots) == 1 {
			s.NearMissDotStdDev = 0
		}
		s.NearMissDotMin = floats.Min(dots)
	}
	s.MeanSpeed = stat.Mean(speeds, nil)

	last := records[len(records)-1]
	s.FinalGravity = [3]float32{last.GravityX, last.GravityY, last.GravityZ}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d ticks, %d flips, %d near misses, %.1f units travelled",
		s.Ticks, s.Flips, s.NearMisses, s.Distance)
}
