package controllers

import (
	"swiftaid/models"
	"swiftaid/services"
	"swiftaid/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService *services.ReportService
}

func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// ExportIncidents downloads every incident as CSV
// @Summary Export incidents
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file
// @Router /dashboard/incidents/export [get]
func (rc *ReportController) ExportIncidents(c *gin.Context) {
	export, err := rc.reportService.ExportIncidents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.CSVAttachment(c, export.Filename, export.Body)
}

// DashboardStats returns the dashboard counters
// @Summary Dashboard statistics
// @Tags Reports
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Router /dashboard/stats [get]
func (rc *ReportController) DashboardStats(c *gin.Context) {
	stats, err := rc.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, stats)
}

func (rc *ReportController) Trends(c *gin.Context) {
	var req models.TrendsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(utils.NewBadRequestError("Invalid days parameter"))
		return
	}

	trend, err := rc.reportService.DailyTrend(c.Request.Context(), req.Days)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, trend)
}

func (rc *ReportController) Hourly(c *gin.Context) {
	hours, err := rc.reportService.HourlyDistribution(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, hours)
}
