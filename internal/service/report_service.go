package service

import (
	"bytes"
	"encoding/csv"
	"html/template"
	"strconv"
	"time"

	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"
)

// ReportService builds sales reports for the back office.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates the report service.
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// SalesReport is the assembled report for one window.
type SalesReport struct {
	From        *time.Time                   `json:"from"`
	To          *time.Time                   `json:"to"`
	Summary     repository.SalesSummaryRow   `json:"summary"`
	Orders      []repository.SalesOrderRow   `json:"orders"`
	TopProducts []repository.ProductSalesRow `json:"top_products"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

const reportTopProductLimit = 10

// GetSalesReport assembles the summary, order rows and product ranking
// for the requested window.
func (s *ReportService) GetSalesReport(filter repository.SalesReportFilter) (*SalesReport, error) {
	summary, err := s.reportRepo.GetSalesSummary(filter)
	if err != nil {
		return nil, err
	}
	orders, err := s.reportRepo.GetSalesRows(filter)
	if err != nil {
		return nil, err
	}
	top, err := s.reportRepo.GetTopProducts(filter, reportTopProductLimit)
	if err != nil {
		return nil, err
	}
	return &SalesReport{
		From:        filter.From,
		To:          filter.To,
		Summary:     summary,
		Orders:      orders,
		TopProducts: top,
		GeneratedAt: time.Now(),
	}, nil
}

// ExportCSV renders the order rows as a CSV document.
func (s *ReportService) ExportCSV(report *SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"No. Pesanan", "Email Pembeli", "Status", "Subtotal", "Ongkir", "Total", "Dibayar Pada", "Dibuat Pada"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range report.Orders {
		paidAt := ""
		if row.PaidAt != nil {
			paidAt = row.PaidAt.Format("2006-01-02 15:04:05")
		}
		record := []string{
			row.OrderNo,
			row.BuyerEmail,
			row.Status,
			strconv.FormatInt(row.ItemsAmount, 10),
			strconv.FormatInt(row.ShippingCost, 10),
			strconv.FormatInt(row.TotalAmount, 10),
			paidAt,
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var salesReportTemplate = template.Must(template.New("sales_report").Funcs(template.FuncMap{
	"idr": models.FormatIDR,
	"ts": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
}).Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Laporan Penjualan</title>
<style>
body { font-family: sans-serif; margin: 24px; }
table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f0f0f0; }
.num { text-align: right; }
</style>
</head>
<body>
<h1>Laporan Penjualan</h1>
<p>Periode: {{ts .From}} s/d {{ts .To}} &middot; Dibuat {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>

<h2>Ringkasan</h2>
<table>
<tr><th>Total Pesanan</th><td class="num">{{.Summary.OrdersTotal}}</td></tr>
<tr><th>Pesanan Dibayar</th><td class="num">{{.Summary.OrdersPaid}}</td></tr>
<tr><th>Pesanan Dibatalkan</th><td class="num">{{.Summary.OrdersCanceled}}</td></tr>
<tr><th>Pendapatan Kotor</th><td class="num">{{idr .Summary.GrossRevenue}}</td></tr>
<tr><th>Total Ongkir</th><td class="num">{{idr .Summary.ShippingTotal}}</td></tr>
<tr><th>Barang Terjual</th><td class="num">{{.Summary.ItemsSold}}</td></tr>
</table>

<h2>Pesanan</h2>
<table>
<tr><th>No. Pesanan</th><th>Email Pembeli</th><th>Status</th><th>Subtotal</th><th>Ongkir</th><th>Total</th><th>Dibayar</th></tr>
{{range .Orders}}
<tr>
<td>{{.OrderNo}}</td>
<td>{{.BuyerEmail}}</td>
<td>{{.Status}}</td>
<td class="num">{{idr .ItemsAmount}}</td>
<td class="num">{{idr .ShippingCost}}</td>
<td class="num">{{idr .TotalAmount}}</td>
<td>{{ts .PaidAt}}</td>
</tr>
{{end}}
</table>

<h2>Produk Terlaris</h2>
<table>
<tr><th>Produk</th><th>Terjual</th><th>Nilai</th></tr>
{{range .TopProducts}}
<tr>
<td>{{.ProductName}}</td>
<td class="num">{{.Quantity}}</td>
<td class="num">{{idr .PaidAmount}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

// ExportHTML renders the full report as a printable HTML document.
func (s *ReportService) ExportHTML(report *SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := salesReportTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
