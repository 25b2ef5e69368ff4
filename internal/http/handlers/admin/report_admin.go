package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) parseReportFilter(c *gin.Context) (repository.SalesReportFilter, bool) {
	from, err := parseTimeNullable(strings.TrimSpace(c.Query("from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return repository.SalesReportFilter{}, false
	}
	to, err := parseTimeNullable(strings.TrimSpace(c.Query("to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return repository.SalesReportFilter{}, false
	}
	return repository.SalesReportFilter{From: from, To: to}, true
}

// AdminGetSalesReport returns the sales report for a window.
func (h *Handler) AdminGetSalesReport(c *gin.Context) {
	filter, ok := h.parseReportFilter(c)
	if !ok {
		return
	}
	report, err := h.ReportService.GetSalesReport(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "laporan tidak dapat dimuat", err)
		return
	}
	response.Success(c, report)
}

// AdminExportSalesReport streams the report as CSV or printable HTML.
func (h *Handler) AdminExportSalesReport(c *gin.Context) {
	filter, ok := h.parseReportFilter(c)
	if !ok {
		return
	}
	report, err := h.ReportService.GetSalesReport(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "laporan tidak dapat dimuat", err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", constants.ExportFormatCSV)))
	stamp := time.Now().Format("20060102")
	switch format {
	case constants.ExportFormatHTML:
		body, err := h.ReportService.ExportHTML(report)
		if err != nil {
			respondError(c, response.CodeInternal, "ekspor laporan gagal", err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	case constants.ExportFormatCSV:
		body, err := h.ReportService.ExportCSV(report)
		if err != nil {
			respondError(c, response.CodeInternal, "ekspor laporan gagal", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="laporan-penjualan-`+stamp+`.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
	default:
		respondError(c, response.CodeBadRequest, "format ekspor tidak dikenal", nil)
	}
}
