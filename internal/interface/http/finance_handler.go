package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-finances/internal/application/finance"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
)

type FinanceHandler struct {
	M *mediator.Mediator
}

func NewFinanceHandler(m *mediator.Mediator) *FinanceHandler {
	return &FinanceHandler{M: m}
}

func (h *FinanceHandler) CreateIncoming(c *gin.Context) {
	var req finance.CreateIncoming
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	req.UserID = c.GetString(middleware.CtxUserIDKey)
	res := mediator.Send[finance.CreateIncoming, finance.Created](c.Request.Context(), h.M, req)
	reply(c, http.StatusCreated, res)
}

func (h *FinanceHandler) ListIncomings(c *gin.Context) {
	req := finance.GetIncomingsByUserId{UserID: c.GetString(middleware.CtxUserIDKey)}
	res := mediator.Send[finance.GetIncomingsByUserId, []finance.IncomingView](c.Request.Context(), h.M, req)
	reply(c, http.StatusOK, res)
}

func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req finance.CreateExpense
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	req.UserID = c.GetString(middleware.CtxUserIDKey)
	res := mediator.Send[finance.CreateExpense, finance.Created](c.Request.Context(), h.M, req)
	reply(c, http.StatusCreated, res)
}

func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	req := finance.GetExpensesByUserId{UserID: c.GetString(middleware.CtxUserIDKey)}
	res := mediator.Send[finance.GetExpensesByUserId, []finance.ExpenseView](c.Request.Context(), h.M, req)
	reply(c, http.StatusOK, res)
}
