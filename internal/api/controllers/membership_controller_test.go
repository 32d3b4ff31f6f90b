package controllers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymstar/internal/models/db_models"
	"gymstar/internal/models/response_models"
	"gymstar/internal/testutil"
)

func TestMembershipController_ListMemberships(t *testing.T) {
	h := setupAPI(t)
	active := testutil.TestPlan(t, h.db, testutil.WithPlanName("Monthly"))
	testutil.TestPlanInfo(t, h.db, active.ID)
	testutil.TestPlan(t, h.db, testutil.WithPlanName("Retired"), testutil.WithStatus(db_models.PlanStatusInactive))

	w := h.do(http.MethodGet, "/memberships", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var plans []response_models.PlanResponse
	parseResponse(t, w, &plans)
	require.Len(t, plans, 1)
	assert.Equal(t, "Monthly", plans[0].Name)
	assert.Equal(t, "1000.00", plans[0].FinalPrice)
	require.NotNil(t, plans[0].PlanInfo)
	assert.Equal(t, "Full gym access", plans[0].PlanInfo.Line1)
}

func TestMembershipController_GetMembership(t *testing.T) {
	h := setupAPI(t)
	plan := testutil.TestPlan(t, h.db)

	w := h.do(http.MethodGet, "/memberships/"+plan.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got response_models.PlanResponse
	parseResponse(t, w, &got)
	assert.Equal(t, plan.ID.String(), got.ID)

	w = h.do(http.MethodGet, "/memberships/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodGet, "/memberships/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMembershipController_MyMemberships(t *testing.T) {
	h := setupAPI(t)
	plan := testutil.TestPlan(t, h.db)
	account := testutil.TestAccount(t, h.db)

	w := h.do(http.MethodGet, "/memberships/me", h.tokenFor(t, account), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var states []response_models.PlanStateResponse
	parseResponse(t, w, &states)
	require.Len(t, states, 1)
	assert.Equal(t, plan.ID.String(), states[0].Plan.ID)
	assert.Equal(t, "get", states[0].State)
	assert.True(t, states[0].CanPurchase)
	assert.Nil(t, states[0].CurrentSubscription)

	w = h.do(http.MethodGet, "/memberships/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
