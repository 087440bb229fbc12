package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pointage/internal/models/db_models"
	"pointage/internal/models/request_models"
	"pointage/internal/models/response_models"
	"pointage/internal/repositories"
	"pointage/pkg/metrics"
	"pointage/pkg/utils"
)

const EventPointageCreated = "pointage.created"

type AttendanceServiceInterface interface {
	OfficeCheckIn(ctx context.Context, userID, companyID uuid.UUID, coords request_models.Coordinates) (*response_models.AttendanceResponse, error)
	MissionCheckIn(ctx context.Context, userID, companyID, missionID uuid.UUID, coords request_models.Coordinates) (*response_models.AttendanceResponse, error)
	TodayAttendance(ctx context.Context, userID uuid.UUID) (*response_models.AttendanceResponse, error)
	ListAttendances(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.AttendanceResponse, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	companyRepo    repositories.CompanyRepository
	officeRepo     repositories.OfficeRepository
	missionRepo    repositories.MissionRepository
	accuracy       AccuracyServiceInterface
	events         EventDispatcherInterface
	notifications  NotificationServiceInterface
	metrics        *metrics.Registry
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	companyRepo repositories.CompanyRepository,
	officeRepo repositories.OfficeRepository,
	missionRepo repositories.MissionRepository,
	accuracy AccuracyServiceInterface,
	events EventDispatcherInterface,
	notifications NotificationServiceInterface,
	m *metrics.Registry,
) AttendanceServiceInterface {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		companyRepo:    companyRepo,
		officeRepo:     officeRepo,
		missionRepo:    missionRepo,
		accuracy:       accuracy,
		events:         events,
		notifications:  notifications,
		metrics:        m,
		now:            time.Now,
	}
}

// matchedSite is the geofence candidate a check-in resolved to.
type matchedSite struct {
	officeID  *uuid.UUID
	missionID *uuid.UUID
	distance  float64
	radius    float64
}

func (s *attendanceService) OfficeCheckIn(ctx context.Context, userID, companyID uuid.UUID, coords request_models.Coordinates) (*response_models.AttendanceResponse, error) {
	if err := s.gatekeep(ctx, userID, coords, db_models.AttendanceKindOffice); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	if company == nil {
		s.metrics.ObserveCheckin(db_models.AttendanceKindOffice, "company_not_found")
		return nil, utils.ErrCompanyNotFound
	}

	offices, err := s.officeRepo.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}

	var site *matchedSite
	levels := []ThresholdLevel{}
	if nearest, dist := nearestOffice(offices, *coords.Latitude, *coords.Longitude); nearest != nil {
		officeID := nearest.ID
		site = &matchedSite{officeID: &officeID, distance: dist, radius: nearest.Radius}
		levels = append(levels, ThresholdLevel{
			ContextType: db_models.AccuracyContextOffice,
			ContextID:   nearest.ID,
			Value:       nearest.CheckinAccuracy,
		})
	}
	levels = append(levels, ThresholdLevel{
		ContextType: db_models.AccuracyContextCompany,
		ContextID:   company.ID,
		Value:       company.CheckinAccuracy,
	})

	return s.commitCheckin(ctx, userID, company, coords, site, levels, nil)
}

func (s *attendanceService) MissionCheckIn(ctx context.Context, userID, companyID, missionID uuid.UUID, coords request_models.Coordinates) (*response_models.AttendanceResponse, error) {
	if err := s.gatekeep(ctx, userID, coords, db_models.AttendanceKindMission); err != nil {
		return nil, err
	}

	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}
	if mission == nil || mission.CompanyID != companyID {
		s.metrics.ObserveCheckin(db_models.AttendanceKindMission, "mission_not_found")
		return nil, utils.ErrMissionNotFound
	}

	status, err := s.missionRepo.InvitationStatus(ctx, missionID, userID)
	if err != nil {
		return nil, fmt.Errorf("load invitation: %w", err)
	}
	if status != db_models.InvitationAccepted {
		s.metrics.ObserveCheckin(db_models.AttendanceKindMission, "mission_not_accepted")
		return nil, utils.ErrMissionNotAccepted
	}

	company, err := s.companyRepo.GetByID(ctx, mission.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	if company == nil {
		s.metrics.ObserveCheckin(db_models.AttendanceKindMission, "company_not_found")
		return nil, utils.ErrCompanyNotFound
	}

	var site *matchedSite
	if mission.Latitude != nil && mission.Longitude != nil && mission.Radius != nil {
		dist := utils.HaversineDistance(*coords.Latitude, *coords.Longitude, *mission.Latitude, *mission.Longitude)
		mid := mission.ID
		site = &matchedSite{missionID: &mid, distance: dist, radius: *mission.Radius}
	}

	levels := []ThresholdLevel{
		{ContextType: db_models.AccuracyContextMission, ContextID: mission.ID, Value: mission.CheckinAccuracy},
		{ContextType: db_models.AccuracyContextCompany, ContextID: company.ID, Value: company.CheckinAccuracy},
	}

	return s.commitCheckin(ctx, userID, company, coords, site, levels, &mission.ID)
}

// gatekeep runs the validation and idempotency gates shared by both kinds.
func (s *attendanceService) gatekeep(ctx context.Context, userID uuid.UUID, coords request_models.Coordinates, kind string) error {
	if !coordsValid(coords) {
		s.metrics.ObserveCheckin(kind, "invalid_input")
		return utils.ErrInvalidCoordinates
	}

	today := utils.DayOf(s.now())
	existing, err := s.attendanceRepo.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		return fmt.Errorf("idempotency lookup: %w", err)
	}
	if existing != nil {
		s.metrics.ObserveCheckin(kind, "already_checked_in")
		s.notifications.NotifyAlreadyCheckedIn(ctx, userID)
		return utils.ErrAlreadyCheckedIn
	}
	return nil
}

// commitCheckin runs the accuracy gate, geofence gate, record creation and
// side effects shared by both check-in kinds.
func (s *attendanceService) commitCheckin(ctx context.Context, userID uuid.UUID, company *db_models.Company, coords request_models.Coordinates, site *matchedSite, levels []ThresholdLevel, missionID *uuid.UUID) (*response_models.AttendanceResponse, error) {
	kind := db_models.AttendanceKindOffice
	if missionID != nil {
		kind = db_models.AttendanceKindMission
	}

	threshold, owner := ResolveThreshold(userID, levels)

	// Accuracy gate: a fix wider than the tolerance is a signal-quality
	// failure and feeds the adaptive loop.
	if *coords.Accuracy > threshold {
		if err := s.accuracy.RecordFailure(ctx, owner, *coords.Accuracy, threshold); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("record accuracy failure sample")
		}
		s.metrics.ObserveCheckin(kind, "accuracy_insufficient")
		return nil, fmt.Errorf("%w: reported %.0fm exceeds the %.0fm tolerance", utils.ErrAccuracyTooLow, *coords.Accuracy, threshold)
	}

	// Geofence gate: a location miss gets no adaptive feedback. Skipped
	// entirely when no site is configured (open-site policy).
	if site != nil && site.distance > site.radius {
		s.metrics.ObserveCheckin(kind, "out_of_range")
		return nil, fmt.Errorf("%w: %.0fm from the nearest site (allowed %.0fm)", utils.ErrOutOfRange, site.distance, site.radius)
	}

	now := s.now()
	attendance := &db_models.Attendance{
		UserID:      userID,
		Kind:        kind,
		Date:        utils.DayOf(now),
		ArrivalTime: now,
		Status:      computeAttendanceStatus(company.WorkStartTime, company.LateToleranceMin, now),
		Latitude:    *coords.Latitude,
		Longitude:   *coords.Longitude,
		Accuracy:    *coords.Accuracy,
		Altitude:    coords.Altitude,
		Heading:     coords.Heading,
		Speed:       coords.Speed,
		MissionID:   missionID,
	}
	if site != nil {
		attendance.OfficeID = site.officeID
		dist := site.distance
		attendance.Distance = &dist
	}

	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		// The unique (user, date) index closes the race two concurrent
		// attempts leave open at the read-then-write pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.metrics.ObserveCheckin(kind, "already_checked_in")
			return nil, utils.ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	if err := s.accuracy.RecordSuccess(ctx, owner, *coords.Accuracy, threshold); err != nil {
		// The record is committed; stats feedback must not undo it.
		logrus.WithError(err).WithField("user_id", userID).Error("record accuracy success sample")
	}

	s.metrics.ObserveCheckin(kind, "created")
	s.emitSideEffects(ctx, company.ID, attendance)

	return attendanceToResponse(attendance), nil
}

// emitSideEffects queues the creation event and notifications. Best effort:
// nothing here may fail the already-committed check-in.
func (s *attendanceService) emitSideEffects(ctx context.Context, companyID uuid.UUID, attendance *db_models.Attendance) {
	s.events.Publish(EventPointageCreated, companyID, attendanceToResponse(attendance))
	s.notifications.NotifyCheckinCreated(ctx, attendance.UserID, attendance)
	if attendance.Status == db_models.AttendanceStatusLate {
		s.notifications.NotifyLateArrival(ctx, attendance.UserID, attendance)
	}
}

func (s *attendanceService) TodayAttendance(ctx context.Context, userID uuid.UUID) (*response_models.AttendanceResponse, error) {
	attendance, err := s.attendanceRepo.FindByUserAndDate(ctx, userID, utils.DayOf(s.now()))
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, nil
	}
	return attendanceToResponse(attendance), nil
}

func (s *attendanceService) ListAttendances(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.AttendanceResponse, error) {
	attendances, err := s.attendanceRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	responses := make([]response_models.AttendanceResponse, 0, len(attendances))
	for i := range attendances {
		responses = append(responses, *attendanceToResponse(&attendances[i]))
	}
	return responses, nil
}

func coordsValid(coords request_models.Coordinates) bool {
	if coords.Latitude == nil || coords.Longitude == nil || coords.Accuracy == nil {
		return false
	}
	for _, v := range []float64{*coords.Latitude, *coords.Longitude, *coords.Accuracy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return *coords.Accuracy >= 0
}

// nearestOffice picks the closest candidate by great-circle distance. When
// every distance is the +Inf sentinel (invalid fix) the first office still
// matches, so the geofence gate fails closed instead of being skipped.
func nearestOffice(offices []db_models.Office, lat, lon float64) (*db_models.Office, float64) {
	if len(offices) == 0 {
		return nil, math.Inf(1)
	}
	nearest := &offices[0]
	best := utils.HaversineDistance(lat, lon, offices[0].Latitude, offices[0].Longitude)
	for i := 1; i < len(offices); i++ {
		d := utils.HaversineDistance(lat, lon, offices[i].Latitude, offices[i].Longitude)
		if d < best {
			best = d
			nearest = &offices[i]
		}
	}
	return nearest, best
}

func attendanceToResponse(a *db_models.Attendance) *response_models.AttendanceResponse {
	resp := &response_models.AttendanceResponse{
		ID:          a.ID.String(),
		Kind:        a.Kind,
		Date:        a.Date.Format("2006-01-02"),
		ArrivalTime: a.ArrivalTime.Format(time.RFC3339),
		Status:      a.Status,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		Accuracy:    a.Accuracy,
		Distance:    a.Distance,
	}
	if a.DepartureTime != nil {
		resp.DepartureTime = a.DepartureTime.Format(time.RFC3339)
	}
	if a.OfficeID != nil {
		resp.OfficeID = a.OfficeID.String()
	}
	if a.MissionID != nil {
		resp.MissionID = a.MissionID.String()
	}
	return resp
}
