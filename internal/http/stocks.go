package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"home-ledger/internal/domain"
	"home-ledger/internal/report"
	"home-ledger/internal/service"
)

// stockRequest carries no profitLoss: it is computed from the prices.
type stockRequest struct {
	StockName string           `json:"stockName"`
	Quantity  *decimal.Decimal `json:"quantity"`
	BuyPrice  *decimal.Decimal `json:"buyPrice"`
	SellPrice *decimal.Decimal `json:"sellPrice"`
	BuyDate   string           `json:"buyDate"`
	SellDate  string           `json:"sellDate"`
}

func (r stockRequest) input() service.StockInput {
	return service.StockInput{
		Name:      r.StockName,
		Quantity:  r.Quantity,
		BuyPrice:  r.BuyPrice,
		SellPrice: r.SellPrice,
		BuyDate:   r.BuyDate,
		SellDate:  r.SellDate,
	}
}

// stockPatchRequest decodes only the patchable fields; anything else in the body is dropped.
type stockPatchRequest struct {
	SellPrice *decimal.Decimal `json:"sellPrice"`
	SellDate  string           `json:"sellDate"`
}

type StockResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	StockName  string  `json:"stockName"`
	Quantity   Amount  `json:"quantity"`
	BuyPrice   Amount  `json:"buyPrice"`
	SellPrice  *Amount `json:"sellPrice"`
	BuyDate    string  `json:"buyDate"`
	SellDate   *string `json:"sellDate"`
	ProfitLoss Amount  `json:"profitLoss"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type StockListResponse struct {
	Total           int             `json:"total"`
	TotalInvestment Amount          `json:"totalInvestment"`
	TotalProfitLoss Amount          `json:"totalProfitLoss"`
	Stocks          []StockResponse `json:"stocks"`
}

func stockToResponse(s domain.Stock) StockResponse {
	resp := StockResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		StockName:  s.Name,
		Quantity:   Amount(s.Quantity),
		BuyPrice:   Amount(s.BuyPrice),
		BuyDate:    formatTime(s.BuyDate),
		SellDate:   formatOptionalTime(s.SellDate),
		ProfitLoss: Amount(s.ProfitLoss),
		CreatedAt:  formatTime(s.CreatedAt),
		UpdatedAt:  formatTime(s.UpdatedAt),
	}
	if s.SellPrice.Valid {
		price := Amount(s.SellPrice.Decimal)
		resp.SellPrice = &price
	}
	return resp
}

func (h *Handler) createStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	stock, err := h.stocks.Create(c.Request.Context(), principal(c), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, stockToResponse(*stock))
}

func (h *Handler) listStocks(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing, err := h.stocks.List(c.Request.Context(), principal(c), dates)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := StockListResponse{
		Total:           listing.Total,
		TotalInvestment: Amount(listing.TotalInvestment),
		TotalProfitLoss: Amount(listing.TotalProfitLoss),
		Stocks:          make([]StockResponse, len(listing.Stocks)),
	}
	for i := range listing.Stocks {
		resp.Stocks[i] = stockToResponse(listing.Stocks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) exportStocks(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing, err := h.stocks.List(c.Request.Context(), principal(c), dates)
	if err != nil {
		h.fail(c, err)
		return
	}
	wb, err := report.Stocks(listing)
	h.sendWorkbook(c, "stocks", wb, err)
}

func (h *Handler) getStock(c *gin.Context) {
	stock, err := h.stocks.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stockToResponse(*stock))
}

func (h *Handler) sellStock(c *gin.Context) {
	var req stockPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	stock, err := h.stocks.Sell(c.Request.Context(), principal(c), c.Param("id"), service.StockSaleInput{
		SellPrice: req.SellPrice,
		SellDate:  req.SellDate,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stockToResponse(*stock))
}

func (h *Handler) deleteStock(c *gin.Context) {
	if err := h.stocks.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock entry deleted successfully"})
}
