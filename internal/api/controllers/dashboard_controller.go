package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymstar/internal/models/request_models"
	"gymstar/internal/services"
	"gymstar/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetSummary godoc
// @Summary Admin dashboard summary
// @Description Customer, plan and subscription counts with the revenue report
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (p *DashboardController) GetSummary(c *gin.Context) {
	summary, err := p.dashboardService.Summary(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Dashboard summary retrieved successfully")
}

// GetRevenue godoc
// @Summary Revenue totals
// @Description Total, today, last 10 days, this and last month, last 3 and 6 months, current and previous financial year
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/revenue [get]
func (p *DashboardController) GetRevenue(c *gin.Context) {
	report, err := p.dashboardService.RevenueReport(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Revenue retrieved successfully")
}

// GetRevenueForDays godoc
// @Summary Revenue of the last N days
// @Tags Dashboard
// @Produce json
// @Param days query int true "Number of days, at least 1"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/revenue/days [get]
func (p *DashboardController) GetRevenueForDays(c *gin.Context) {
	var q request_models.RevenueDaysQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "days is required")
		return
	}

	result, err := p.dashboardService.RevenueForLastDays(c.Request.Context(), q.Days)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Revenue retrieved successfully")
}

// GetRevenueForRange godoc
// @Summary Revenue between two dates
// @Description Whole days, both ends included. The end date must be after the start and not in the future.
// @Tags Dashboard
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end   query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/revenue/range [get]
func (p *DashboardController) GetRevenueForRange(c *gin.Context) {
	var q request_models.RevenueRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "start and end are required")
		return
	}

	result, err := p.dashboardService.RevenueForDateRange(c.Request.Context(), q.Start, q.End)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Revenue retrieved successfully")
}
