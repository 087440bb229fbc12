package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pointage/internal/models/request_models"
	"pointage/internal/services"
	"pointage/pkg/utils"
)

type AttendanceController struct {
	attendanceService services.AttendanceServiceInterface
}

func NewAttendanceController(attendanceService services.AttendanceServiceInterface) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

func (ac *AttendanceController) OfficeCheckinHandler(c *gin.Context) {
	userID, companyID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req request_models.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid check-in payload: "+err.Error())
		return
	}

	resp, err := ac.attendanceService.OfficeCheckIn(c.Request.Context(), userID, companyID, req.Coordinates)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Check-in recorded")
}

func (ac *AttendanceController) MissionCheckinHandler(c *gin.Context) {
	userID, companyID, ok := callerIdentity(c)
	if !ok {
		return
	}

	missionID, err := uuid.Parse(c.Param("missionId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid mission id")
		return
	}

	var req request_models.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid check-in payload: "+err.Error())
		return
	}

	resp, err := ac.attendanceService.MissionCheckIn(c.Request.Context(), userID, companyID, missionID, req.Coordinates)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Mission check-in recorded")
}

func (ac *AttendanceController) TodayHandler(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	resp, err := ac.attendanceService.TodayAttendance(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if resp == nil {
		utils.RespondError(c, http.StatusNotFound, "No attendance recorded today")
		return
	}

	utils.RespondSuccess(c, resp, "Fetched today's attendance")
}

func (ac *AttendanceController) ListHandler(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	resp, err := ac.attendanceService.ListAttendances(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fetched attendances")
}

// callerIdentity pulls the ids the auth middleware placed in the context.
func callerIdentity(c *gin.Context) (userID, companyID uuid.UUID, ok bool) {
	userVal, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, "Missing authentication")
		return uuid.Nil, uuid.Nil, false
	}
	companyVal, exists := c.Get("company_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, "Missing authentication")
		return uuid.Nil, uuid.Nil, false
	}

	userID, okUser := userVal.(uuid.UUID)
	companyID, okCompany := companyVal.(uuid.UUID)
	if !okUser || !okCompany {
		utils.RespondError(c, http.StatusUnauthorized, "Missing authentication")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, companyID, true
}
