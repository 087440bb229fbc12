package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pointage/internal/models/db_models"
	"pointage/pkg/metrics"
)

// DefaultAccuracyThreshold applies when neither the matched site nor the
// company configures a tolerance.
const DefaultAccuracyThreshold = 100.0

// AccuracyContext names the entity whose threshold gated a check-in, per
// user. Adaptive feedback is recorded against it.
type AccuracyContext struct {
	Type   string
	ID     uuid.UUID
	UserID uuid.UUID
}

// ThresholdLevel is one step of the resolution chain, most specific first.
// Value is nil when the level has nothing configured.
type ThresholdLevel struct {
	ContextType string
	ContextID   uuid.UUID
	Value       *float64
}

// ResolveThreshold walks the levels and returns the first configured value
// together with the context that supplied it. When no level is configured
// the last level owns the process default, so feedback still lands
// somewhere sensible (the company, in practice).
func ResolveThreshold(userID uuid.UUID, levels []ThresholdLevel) (float64, AccuracyContext) {
	for _, level := range levels {
		if level.Value != nil {
			return *level.Value, AccuracyContext{Type: level.ContextType, ID: level.ContextID, UserID: userID}
		}
	}
	last := levels[len(levels)-1]
	return DefaultAccuracyThreshold, AccuracyContext{Type: last.ContextType, ID: last.ContextID, UserID: userID}
}

type AccuracyServiceInterface interface {
	RecordSuccess(ctx context.Context, owner AccuracyContext, accuracy, appliedThreshold float64) error
	RecordFailure(ctx context.Context, owner AccuracyContext, accuracy, appliedThreshold float64) error
}

type accuracyService struct {
	db      *gorm.DB
	metrics *metrics.Registry
	now     func() time.Time
}

func NewAccuracyService(db *gorm.DB, m *metrics.Registry) AccuracyServiceInterface {
	return &accuracyService{db: db, metrics: m, now: time.Now}
}

func (s *accuracyService) RecordSuccess(ctx context.Context, owner AccuracyContext, accuracy, appliedThreshold float64) error {
	return s.recordSample(ctx, owner, accuracy, appliedThreshold, tuneSuccess)
}

func (s *accuracyService) RecordFailure(ctx context.Context, owner AccuracyContext, accuracy, appliedThreshold float64) error {
	return s.recordSample(ctx, owner, accuracy, appliedThreshold, tuneFailure)
}

type tuneFunc func(stats *db_models.AccuracyStat, accuracy, current float64, now time.Time) TuneResult

// recordSample runs one tuner decision inside a transaction. The stats row
// is loaded FOR UPDATE so concurrent check-ins against the same context
// serialize their read-modify-write; the live threshold is re-read from the
// owning entity inside the same transaction.
func (s *accuracyService) recordSample(ctx context.Context, owner AccuracyContext, accuracy, appliedThreshold float64, tune tuneFunc) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stats, err := s.lockStats(tx, owner)
		if err != nil {
			return err
		}

		current, err := s.liveThreshold(tx, owner)
		if err != nil {
			return err
		}

		res := tune(stats, accuracy, current, s.now())

		if err := tx.Save(stats).Error; err != nil {
			return fmt.Errorf("save accuracy stats: %w", err)
		}
		if res.Changed {
			if err := s.writeThreshold(tx, owner, res.Threshold); err != nil {
				return err
			}
		}

		for _, transition := range res.Transitions {
			s.metrics.ObserveThresholdTransition(transition)
			logrus.WithFields(logrus.Fields{
				"context_type": owner.Type,
				"context_id":   owner.ID,
				"user_id":      owner.UserID,
				"transition":   transition,
				"threshold":    res.Threshold,
				"applied":      appliedThreshold,
			}).Info("accuracy threshold transition")
		}
		return nil
	})
}

// lockStats loads the stats row under FOR UPDATE, creating it lazily on the
// first sample for a context. A creation race is resolved by retrying the
// locked load after losing on the unique index.
func (s *accuracyService) lockStats(tx *gorm.DB, owner AccuracyContext) (*db_models.AccuracyStat, error) {
	var stats db_models.AccuracyStat
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("context_type = ? AND context_id = ? AND user_id = ?", owner.Type, owner.ID, owner.UserID).
		First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load accuracy stats: %w", err)
	}

	stats = db_models.AccuracyStat{
		ContextType: owner.Type,
		ContextID:   owner.ID,
		UserID:      owner.UserID,
	}
	if err := tx.Create(&stats).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create accuracy stats: %w", err)
		}
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("context_type = ? AND context_id = ? AND user_id = ?", owner.Type, owner.ID, owner.UserID).
			First(&stats).Error
		if err != nil {
			return nil, fmt.Errorf("reload accuracy stats: %w", err)
		}
	}
	return &stats, nil
}

func (s *accuracyService) liveThreshold(tx *gorm.DB, owner AccuracyContext) (float64, error) {
	value, err := s.readThreshold(tx, owner)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return DefaultAccuracyThreshold, nil
	}
	return *value, nil
}

func (s *accuracyService) readThreshold(tx *gorm.DB, owner AccuracyContext) (*float64, error) {
	var entity struct {
		CheckinAccuracy *float64
	}
	table, err := contextTable(owner.Type)
	if err != nil {
		return nil, err
	}
	err = tx.Table(table).Select("checkin_accuracy").Where("id = ?", owner.ID).Scan(&entity).Error
	if err != nil {
		return nil, fmt.Errorf("read %s threshold: %w", owner.Type, err)
	}
	return entity.CheckinAccuracy, nil
}

func (s *accuracyService) writeThreshold(tx *gorm.DB, owner AccuracyContext, value float64) error {
	table, err := contextTable(owner.Type)
	if err != nil {
		return err
	}
	if err := tx.Table(table).Where("id = ?", owner.ID).Update("checkin_accuracy", value).Error; err != nil {
		return fmt.Errorf("write %s threshold: %w", owner.Type, err)
	}
	return nil
}

func contextTable(contextType string) (string, error) {
	switch contextType {
	case db_models.AccuracyContextCompany:
		return "companies", nil
	case db_models.AccuracyContextOffice:
		return "offices", nil
	case db_models.AccuracyContextMission:
		return "missions", nil
	default:
		return "", fmt.Errorf("unknown accuracy context type %q", contextType)
	}
}
