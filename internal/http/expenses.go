package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"home-ledger/internal/domain"
	"home-ledger/internal/report"
	"home-ledger/internal/service"
)

type expenseRequest struct {
	ExpenseName string           `json:"expenseName"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
	ExpenseDate string           `json:"expenseDate"`
}

func (r expenseRequest) input() service.ExpenseInput {
	return service.ExpenseInput{
		Name:        r.ExpenseName,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.ExpenseDate,
	}
}

type ExpenseResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	ExpenseName string `json:"expenseName"`
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
	ExpenseDate string `json:"expenseDate"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type ExpenseListResponse struct {
	Total       int               `json:"total"`
	TotalAmount Amount            `json:"totalAmount"`
	Expenses    []ExpenseResponse `json:"expenses"`
}

func expenseToResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ExpenseName: e.Name,
		Amount:      Amount(e.Amount),
		Description: e.Description,
		ExpenseDate: formatTime(e.Date),
		CreatedAt:   formatTime(e.CreatedAt),
		UpdatedAt:   formatTime(e.UpdatedAt),
	}
}

func (h *Handler) createExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	expense, err := h.expenses.Create(c.Request.Context(), principal(c), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, expenseToResponse(*expense))
}

func (h *Handler) listExpenses(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing, err := h.expenses.List(c.Request.Context(), principal(c), dates)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := ExpenseListResponse{
		Total:       listing.Total,
		TotalAmount: Amount(listing.TotalAmount),
		Expenses:    make([]ExpenseResponse, len(listing.Expenses)),
	}
	for i := range listing.Expenses {
		resp.Expenses[i] = expenseToResponse(listing.Expenses[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) exportExpenses(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing, err := h.expenses.List(c.Request.Context(), principal(c), dates)
	if err != nil {
		h.fail(c, err)
		return
	}
	wb, err := report.Expenses(listing)
	h.sendWorkbook(c, "expenses", wb, err)
}

func (h *Handler) getExpense(c *gin.Context) {
	expense, err := h.expenses.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, expenseToResponse(*expense))
}

func (h *Handler) updateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	expense, err := h.expenses.Update(c.Request.Context(), principal(c), c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, expenseToResponse(*expense))
}

func (h *Handler) deleteExpense(c *gin.Context) {
	if err := h.expenses.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
