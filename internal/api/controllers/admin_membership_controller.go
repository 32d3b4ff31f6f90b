package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymstar/internal/models/request_models"
	"gymstar/internal/services"
	"gymstar/pkg/utils"
)

type AdminMembershipController struct {
	planService services.PlanServiceInterface
}

func NewAdminMembershipController(planService services.PlanServiceInterface) *AdminMembershipController {
	return &AdminMembershipController{planService: planService}
}

// ListPlans godoc
// @Summary List every plan including inactive ones
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/memberships [get]
func (a *AdminMembershipController) ListPlans(c *gin.Context) {
	plans, err := a.planService.ListAllPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans retrieved successfully")
}

// CreatePlan godoc
// @Summary Create a plan
// @Description The final price is derived from price and discount
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.UpsertPlanRequest true "Plan"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/memberships [post]
func (a *AdminMembershipController) CreatePlan(c *gin.Context) {
	var req request_models.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := a.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, plan, "Plan created successfully")
}

// UpdatePlan godoc
// @Summary Update a plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.UpsertPlanRequest true "Plan"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/memberships/{id} [put]
func (a *AdminMembershipController) UpdatePlan(c *gin.Context) {
	var req request_models.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := a.planService.UpdatePlan(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan updated successfully")
}

// UpsertPlanInfo godoc
// @Summary Set the display lines of a plan
// @Description Lines 1 to 5 are required (30 chars), line 6 up to 60 chars, line 7 up to 30 chars
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.PlanInfoRequest true "Plan info"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/memberships/{id}/info [put]
func (a *AdminMembershipController) UpsertPlanInfo(c *gin.Context) {
	var req request_models.PlanInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	info, err := a.planService.UpsertPlanInfo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, info, "Plan info saved successfully")
}
