package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymstar/internal/models/request_models"
	"gymstar/internal/models/response_models"
	"gymstar/internal/services"
	"gymstar/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreateCheckout godoc
// @Summary Start a hosted checkout for a plan
// @Description Returns the provider session id and checkout URL. Nothing is stored until completion.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CheckoutRequest true "Plan to buy"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := p.paymentService.CreateCheckout(c.Request.Context(), userID, req.MembershipID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Checkout session created")
}

// CompletePayment godoc
// @Summary Record the subscription of a paid checkout
// @Description Idempotent per session id: a repeated call returns the recorded subscription with 200
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CompletePaymentRequest false "Session to complete"
// @Param session_id query string false "Session to complete"
// @Success 200 {object} utils.APIResponse
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/complete [post]
func (p *PaymentController) CompletePayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CompletePaymentRequest
	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	sub, replayed, err := p.paymentService.CompletePayment(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.CompletePaymentResponse{Subscription: *sub, Replayed: replayed}
	if replayed {
		utils.RespondSuccess(c, resp, "Subscription already recorded")
		return
	}
	utils.RespondCreated(c, resp, "Subscription created successfully")
}
