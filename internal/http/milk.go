package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"home-ledger/internal/domain"
	"home-ledger/internal/report"
	"home-ledger/internal/service"
)

// milkRequest has no owner or total fields: both are always derived server side.
type milkRequest struct {
	Quantity      *decimal.Decimal `json:"quantity"`
	PricePerLiter *decimal.Decimal `json:"pricePerLiter"`
	MilkInDate    string           `json:"milkInDate"`
}

func (r milkRequest) input() service.MilkInput {
	return service.MilkInput{
		Quantity:      r.Quantity,
		PricePerLiter: r.PricePerLiter,
		Date:          r.MilkInDate,
	}
}

type MilkResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Quantity      Amount `json:"quantity"`
	PricePerLiter Amount `json:"pricePerLiter"`
	TotalPrice    Amount `json:"totalPrice"`
	MilkInDate    string `json:"milkInDate"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type MilkListResponse struct {
	Total         int            `json:"total"`
	TotalPriceSum Amount         `json:"totalPriceSum"`
	Entries       []MilkResponse `json:"entries"`
}

func milkToResponse(m domain.Milk) MilkResponse {
	return MilkResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		Quantity:      Amount(m.Quantity),
		PricePerLiter: Amount(m.PricePerLiter),
		TotalPrice:    Amount(m.TotalPrice),
		MilkInDate:    formatTime(m.Date),
		CreatedAt:     formatTime(m.CreatedAt),
		UpdatedAt:     formatTime(m.UpdatedAt),
	}
}

func (h *Handler) createMilk(c *gin.Context) {
	var req milkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	milk, err := h.milk.Create(c.Request.Context(), principal(c), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, milkToResponse(*milk))
}

func (h *Handler) listMilk(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing, err := h.milk.List(c.Request.Context(), principal(c), dates)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := MilkListResponse{
		Total:         listing.Total,
		TotalPriceSum: Amount(listing.TotalPriceSum),
		Entries:       make([]MilkResponse, len(listing.Entries)),
	}
	for i := range listing.Entries {
		resp.Entries[i] = milkToResponse(listing.Entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) exportMilk(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing, err := h.milk.List(c.Request.Context(), principal(c), dates)
	if err != nil {
		h.fail(c, err)
		return
	}
	wb, err := report.Milk(listing)
	h.sendWorkbook(c, "milk", wb, err)
}

func (h *Handler) getMilk(c *gin.Context) {
	milk, err := h.milk.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, milkToResponse(*milk))
}

func (h *Handler) updateMilk(c *gin.Context) {
	var req milkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	milk, err := h.milk.Update(c.Request.Context(), principal(c), c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, milkToResponse(*milk))
}

func (h *Handler) deleteMilk(c *gin.Context) {
	if err := h.milk.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milk entry deleted successfully"})
}
