package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/SscSPs/billing_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

// RegisterBalanceRoutes registers the read-only balance route.
func RegisterBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := &balanceHandler{balanceService: balanceService}
	rg.GET("/balances/:documentID", h.getBalance)
}

// getBalance godoc
// @Summary Get the outstanding balance of a document
// @Description Returns the grand total, the sum of recorded payments and their difference. Overpaid documents have a negative balance.
// @Tags balances
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to calculate balance"
// @Security BearerAuth
// @Router /balances/{documentID} [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	documentID, ok := documentIDParam(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), documentID)
	if err != nil {
		respondWithError(c, err, "Failed to calculate balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
