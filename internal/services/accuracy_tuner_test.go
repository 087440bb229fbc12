package services

import (
	"testing"
	"time"

	"pointage/internal/models/db_models"
)

var tunerNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func newStats() *db_models.AccuracyStat {
	return &db_models.AccuracyStat{}
}

func TestTuneSuccessTightensAfterStreak(t *testing.T) {
	stats := newStats()
	current := 100.0

	// Two good samples: streak builds, no change yet.
	for i := 0; i < 2; i++ {
		res := tuneSuccess(stats, 20, current, tunerNow)
		if res.Changed {
			t.Fatalf("sample %d changed the threshold prematurely: %+v", i+1, res)
		}
	}
	if stats.SuccessStreak != 2 {
		t.Fatalf("success streak = %d, want 2", stats.SuccessStreak)
	}

	// Third sample with comfortable headroom (avg 20 <= 60) tightens by 5.
	res := tuneSuccess(stats, 20, current, tunerNow)
	if !res.Changed || res.Threshold != 95 {
		t.Fatalf("expected tighten to 95, got %+v", res)
	}
	if stats.SuccessStreak != 0 {
		t.Errorf("streak not reset after tighten: %d", stats.SuccessStreak)
	}
	if stats.BaselineAccuracy == nil || *stats.BaselineAccuracy != 95 {
		t.Errorf("baseline = %v, want 95", stats.BaselineAccuracy)
	}
}

func TestTuneSuccessHeadroomGuardBlocksTighten(t *testing.T) {
	stats := newStats()
	current := 100.0

	// Samples close to the threshold: streak reaches 3 but the rolling
	// average (80) sits above 60% of current.
	var res TuneResult
	for i := 0; i < 3; i++ {
		res = tuneSuccess(stats, 80, current, tunerNow)
	}
	if res.Changed {
		t.Fatalf("tightened on noisy signal: %+v", res)
	}
	if stats.SuccessStreak != 3 {
		t.Errorf("streak = %d, want 3 (not consumed)", stats.SuccessStreak)
	}
}

func TestTuneSuccessClampsAtMinimum(t *testing.T) {
	stats := newStats()
	stats.SuccessStreak = 2
	current := 8.0

	res := tuneSuccess(stats, 3, current, tunerNow)
	if !res.Changed || res.Threshold != MinAccuracyThreshold {
		t.Fatalf("expected clamp to %v, got %+v", MinAccuracyThreshold, res)
	}

	// At the floor there is nothing left to tighten.
	stats.SuccessStreak = 2
	res = tuneSuccess(stats, 3, MinAccuracyThreshold, tunerNow)
	if res.Changed {
		t.Fatalf("tightened below the floor: %+v", res)
	}
}

func TestTuneFailureRelaxesAfterStreak(t *testing.T) {
	stats := newStats()
	current := 100.0

	res := tuneFailure(stats, 150, current, tunerNow)
	if res.Changed {
		t.Fatalf("relaxed after a single failure: %+v", res)
	}
	if stats.FailureStreak != 1 {
		t.Fatalf("failure streak = %d, want 1", stats.FailureStreak)
	}

	res = tuneFailure(stats, 160, current, tunerNow)
	if !res.Changed || res.Threshold != 115 {
		t.Fatalf("expected relax to 115, got %+v", res)
	}
	if stats.FailureStreak != 0 {
		t.Errorf("failure streak not reset: %d", stats.FailureStreak)
	}
	if stats.BaselineAccuracy == nil || *stats.BaselineAccuracy != 100 {
		t.Errorf("baseline = %v, want captured 100", stats.BaselineAccuracy)
	}
	if stats.TemporaryAccuracy == nil || *stats.TemporaryAccuracy != 115 {
		t.Errorf("temporary = %v, want 115", stats.TemporaryAccuracy)
	}
	wantExpiry := tunerNow.Add(6 * time.Hour).Unix()
	if stats.TemporaryExpiresAt == nil || *stats.TemporaryExpiresAt != wantExpiry {
		t.Errorf("expiry = %v, want %v", stats.TemporaryExpiresAt, wantExpiry)
	}
}

func TestTuneFailureClampsAtMaximum(t *testing.T) {
	stats := newStats()
	stats.FailureStreak = 1
	current := MaxAccuracyThreshold

	res := tuneFailure(stats, 400, current, tunerNow)
	if res.Changed {
		t.Fatalf("relaxed past the cap: %+v", res)
	}
	if stats.TemporaryAccuracy != nil {
		t.Errorf("temporary set with no headroom to relax")
	}
}

func TestRelaxationExpiryRestoresBaseline(t *testing.T) {
	stats := newStats()
	current := 100.0

	// Open a relaxation window.
	tuneFailure(stats, 150, current, tunerNow)
	res := tuneFailure(stats, 150, current, tunerNow)
	if !res.Changed || res.Threshold != 115 {
		t.Fatalf("setup relax failed: %+v", res)
	}

	// Next sample after expiry restores the baseline before anything else.
	after := tunerNow.Add(6*time.Hour + time.Minute)
	res = tuneSuccess(stats, 50, 115, after)
	if !res.Changed || res.Threshold != 100 {
		t.Fatalf("expected restore to 100, got %+v", res)
	}
	if stats.TemporaryAccuracy != nil || stats.TemporaryExpiresAt != nil {
		t.Errorf("temporary pair not cleared: %v %v", stats.TemporaryAccuracy, stats.TemporaryExpiresAt)
	}
}

func TestEarlyRecoveryRestoresBeforeExpiry(t *testing.T) {
	stats := newStats()
	current := 100.0

	tuneFailure(stats, 150, current, tunerNow)
	tuneFailure(stats, 150, current, tunerNow)

	// A success at or inside the baseline restores immediately.
	soon := tunerNow.Add(time.Hour)
	res := tuneSuccess(stats, 90, 115, soon)
	if !res.Changed || res.Threshold != 100 {
		t.Fatalf("expected early restore to 100, got %+v", res)
	}
	if stats.TemporaryAccuracy != nil {
		t.Errorf("temporary not cleared on early recovery")
	}
}

func TestActiveRelaxationResyncsDriftedThreshold(t *testing.T) {
	stats := newStats()

	tuneFailure(stats, 150, 100, tunerNow)
	tuneFailure(stats, 150, 100, tunerNow)

	// The live threshold drifted to 80 while the relaxation (115) is still
	// active; the next bad-but-passing sample resyncs it.
	soon := tunerNow.Add(time.Hour)
	res := tuneSuccess(stats, 110, 80, soon)
	if !res.Changed || res.Threshold != 115 {
		t.Fatalf("expected resync to 115, got %+v", res)
	}
}

func TestStreaksAreMutuallyExclusive(t *testing.T) {
	stats := newStats()

	tuneSuccess(stats, 20, 100, tunerNow)
	tuneSuccess(stats, 20, 100, tunerNow)
	tuneFailure(stats, 150, 100, tunerNow)
	if stats.SuccessStreak != 0 || stats.FailureStreak != 1 {
		t.Errorf("streaks after failure = (%d, %d), want (0, 1)", stats.SuccessStreak, stats.FailureStreak)
	}

	tuneSuccess(stats, 20, 100, tunerNow)
	if stats.SuccessStreak != 1 || stats.FailureStreak != 0 {
		t.Errorf("streaks after success = (%d, %d), want (1, 0)", stats.SuccessStreak, stats.FailureStreak)
	}
}

func TestRunningAverage(t *testing.T) {
	stats := newStats()

	tuneSuccess(stats, 10, 100, tunerNow)
	tuneSuccess(stats, 20, 100, tunerNow)
	tuneFailure(stats, 120, 100, tunerNow)

	if stats.TotalSamples != 3 {
		t.Fatalf("total samples = %d, want 3", stats.TotalSamples)
	}
	want := (10.0 + 20.0 + 120.0) / 3.0
	if diff := stats.AverageAccuracy - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("average = %v, want %v", stats.AverageAccuracy, want)
	}
}
