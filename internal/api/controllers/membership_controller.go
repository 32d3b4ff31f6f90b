package controllers

import (
	"github.com/gin-gonic/gin"

	"gymstar/internal/services"
	"gymstar/pkg/utils"
)

type MembershipController struct {
	membershipService services.MembershipService
}

func NewMembershipController(membershipService services.MembershipService) *MembershipController {
	return &MembershipController{membershipService: membershipService}
}

// ListMemberships godoc
// @Summary List membership plans
// @Description Active plans with their display info, oldest first
// @Tags Memberships
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /memberships [get]
func (m *MembershipController) ListMemberships(c *gin.Context) {
	plans, err := m.membershipService.ListCatalog(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Memberships retrieved successfully")
}

// GetMembership godoc
// @Summary Get a membership plan
// @Tags Memberships
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /memberships/{id} [get]
func (m *MembershipController) GetMembership(c *gin.Context) {
	plan, err := m.membershipService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Membership retrieved successfully")
}

// MyMemberships godoc
// @Summary List plans with the caller's purchase state
// @Description Each plan carries one of get, upgrade, current, extended or maxed
// @Tags Memberships
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /memberships/me [get]
func (m *MembershipController) MyMemberships(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	states, err := m.membershipService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, states, "Membership states retrieved successfully")
}
