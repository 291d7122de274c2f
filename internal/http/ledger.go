package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"home-ledger/internal/ledger"
	"home-ledger/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// dateRange parses startDate/endDate before any query runs.
func dateRange(c *gin.Context) (ledger.DateRange, error) {
	return ledger.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
}

func (h *Handler) sendWorkbook(c *gin.Context, name string, wb *report.Workbook, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	// render fully before committing the status so a failure is still a 500
	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		h.fail(c, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
