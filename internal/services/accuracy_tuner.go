package services

import (
	"math"
	"time"

	"pointage/internal/models/db_models"
)

// Bounds and steps of the adaptive accuracy control loop. The loop tightens
// slowly on sustained good signal and loosens quickly but temporarily,
// always reverting toward the last known-good baseline.
const (
	MinAccuracyThreshold = 5.0
	MaxAccuracyThreshold = 300.0

	tightenStep   = 5.0
	relaxStep     = 15.0
	tightenStreak = 3
	relaxStreak   = 2

	// A tighten only happens when the rolling average sits well inside the
	// current threshold, so one lucky streak on noisy signal cannot
	// over-tighten.
	tightenHeadroomRatio = 0.6

	relaxWindow = 6 * time.Hour
)

const (
	TransitionRestore = "restore"
	TransitionResync  = "resync"
	TransitionTighten = "tighten"
	TransitionRelax   = "relax"
)

// TuneResult reports what the live threshold on the owning entity should
// become after a sample. Changed is false when the entity needs no write.
type TuneResult struct {
	Threshold   float64
	Changed     bool
	Transitions []string
}

func (r *TuneResult) apply(value float64, transition string) {
	r.Threshold = value
	r.Changed = true
	r.Transitions = append(r.Transitions, transition)
}

// tuneSuccess folds one accepted sample into stats and decides whether the
// live threshold moves. stats is mutated in place; current is the live
// threshold that gated the sample. Pure apart from the caller-supplied now.
func tuneSuccess(stats *db_models.AccuracyStat, accuracy, current float64, now time.Time) TuneResult {
	res := TuneResult{Threshold: current}
	tunePreamble(stats, &res, now)
	recordSample(stats, accuracy)

	stats.SuccessStreak++
	stats.FailureStreak = 0

	// Early recovery: a fix already at or inside the baseline proves the
	// relaxation is no longer needed.
	if stats.TemporaryAccuracy != nil && stats.BaselineAccuracy != nil && accuracy <= *stats.BaselineAccuracy {
		restoreBaseline(stats, &res)
	}

	if stats.SuccessStreak >= tightenStreak {
		candidate := math.Max(MinAccuracyThreshold, res.Threshold-tightenStep)
		if candidate < res.Threshold && stats.AverageAccuracy <= res.Threshold*tightenHeadroomRatio {
			res.apply(candidate, TransitionTighten)
			baseline := candidate
			stats.BaselineAccuracy = &baseline
			stats.SuccessStreak = 0
		}
	}

	return res
}

// tuneFailure folds one rejected sample into stats. Two consecutive
// failures open a temporary relaxation window that widens the threshold
// until it expires or a good-enough fix arrives.
func tuneFailure(stats *db_models.AccuracyStat, accuracy, current float64, now time.Time) TuneResult {
	res := TuneResult{Threshold: current}
	tunePreamble(stats, &res, now)
	recordSample(stats, accuracy)

	stats.FailureStreak++
	stats.SuccessStreak = 0

	if stats.FailureStreak >= relaxStreak {
		candidate := math.Min(res.Threshold+relaxStep, MaxAccuracyThreshold)
		if candidate > res.Threshold {
			if stats.BaselineAccuracy == nil {
				baseline := res.Threshold
				stats.BaselineAccuracy = &baseline
			}
			res.apply(candidate, TransitionRelax)
			temp := candidate
			stats.TemporaryAccuracy = &temp
			expires := now.Add(relaxWindow).Unix()
			stats.TemporaryExpiresAt = &expires
			stats.FailureStreak = 0
		}
	}

	return res
}

// tunePreamble handles relaxation expiry and re-synchronizes a drifted live
// threshold before the sample itself is considered.
func tunePreamble(stats *db_models.AccuracyStat, res *TuneResult, now time.Time) {
	if stats.TemporaryExpiresAt != nil && now.Unix() >= *stats.TemporaryExpiresAt {
		restoreBaseline(stats, res)
		return
	}
	if stats.TemporaryAccuracy != nil && *stats.TemporaryAccuracy != res.Threshold {
		res.apply(*stats.TemporaryAccuracy, TransitionResync)
	}
}

func restoreBaseline(stats *db_models.AccuracyStat, res *TuneResult) {
	if stats.BaselineAccuracy != nil {
		res.apply(clampThreshold(*stats.BaselineAccuracy), TransitionRestore)
	}
	stats.TemporaryAccuracy = nil
	stats.TemporaryExpiresAt = nil
	stats.FailureStreak = 0
}

func recordSample(stats *db_models.AccuracyStat, accuracy float64) {
	n := float64(stats.TotalSamples)
	stats.AverageAccuracy = (stats.AverageAccuracy*n + accuracy) / (n + 1)
	stats.TotalSamples++
}

func clampThreshold(v float64) float64 {
	return math.Min(math.Max(v, MinAccuracyThreshold), MaxAccuracyThreshold)
}
