package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

func earningsForPeriod(c *gin.Context) ([]models.AffiliateEarning, time.Time, time.Time, error) {
	period := c.DefaultQuery("period", "month")

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = startDate.AddDate(0, 0, 1)
	case "week":
		endDate = now.Add(24 * time.Hour)
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	case "month":
		startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		endDate = startDate.AddDate(0, 1, 0)
	default:
		return nil, startDate, endDate, fmt.Errorf("period must be day, week, or month")
	}

	var earnings []models.AffiliateEarning
	err := config.DB.Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Preload("Tenant").
		Preload("Affiliator").
		Order("created_at DESC").
		Find(&earnings).Error
	return earnings, startDate, endDate, err
}

// DownloadEarningsReportExcel streams a commission report as an Excel file
func DownloadEarningsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadEarningsReportExcel called")

	earnings, startDate, endDate, err := earningsForPeriod(c)
	if err != nil {
		utils.LogError("Failed to build earnings report: %v", err)
		utils.BadRequest(c, "Invalid period", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d earnings for Excel report", len(earnings))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Commission Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("WARUNGIN - Affiliate Commission Report")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + startDate.Format("2006-01-02") + " to " + endDate.AddDate(0, 0, -1).Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Date", "Affiliator", "Tenant", "Plan", "Subscription Price", "Rate (%)", "Commission", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	var totalCommission float64
	for _, e := range earnings {
		row := sheet.AddRow()
		row.AddCell().SetString(e.CreatedAt.Format("2006-01-02"))
		if e.Affiliator != nil {
			row.AddCell().SetString(e.Affiliator.Name)
		} else {
			row.AddCell().SetString("-")
		}
		if e.Tenant != nil {
			row.AddCell().SetString(e.Tenant.Name)
		} else {
			row.AddCell().SetString("-")
		}
		row.AddCell().SetString(e.SubscriptionPlan)
		row.AddCell().SetFloat(e.SubscriptionPrice)
		row.AddCell().SetFloat(e.CommissionRate)
		row.AddCell().SetFloat(e.CommissionAmount)
		row.AddCell().SetString(e.Status)
		totalCommission += e.CommissionAmount
	}

	sheet.AddRow()
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Total Commission")
	for i := 1; i < 6; i++ {
		totalRow.AddCell()
	}
	totalRow.AddCell().SetFloat(totalCommission)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	filename := fmt.Sprintf("commission-report-%s.xlsx", startDate.Format("2006-01"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// DownloadEarningsReportPDF streams a commission report as a PDF file
func DownloadEarningsReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadEarningsReportPDF called")

	earnings, startDate, endDate, err := earningsForPeriod(c)
	if err != nil {
		utils.LogError("Failed to build earnings report: %v", err)
		utils.BadRequest(c, "Invalid period", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d earnings for PDF report", len(earnings))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "WARUNGIN - Affiliate Commission Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Period: "+startDate.Format("2006-01-02")+" to "+endDate.AddDate(0, 0, -1).Format("2006-01-02"))
	pdf.Ln(12)

	headers := []string{"Date", "Affiliator", "Tenant", "Plan", "Price", "Rate", "Commission", "Status"}
	widths := []float64{25, 50, 50, 30, 30, 15, 35, 25}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	var totalCommission float64
	for _, e := range earnings {
		affiliatorName := "-"
		if e.Affiliator != nil {
			affiliatorName = e.Affiliator.Name
		}
		tenantName := "-"
		if e.Tenant != nil {
			tenantName = e.Tenant.Name
		}

		pdf.CellFormat(widths[0], 7, e.CreatedAt.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, affiliatorName, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 7, tenantName, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 7, e.SubscriptionPlan, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.0f", e.SubscriptionPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.0f%%", e.CommissionRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 7, fmt.Sprintf("%.0f", e.CommissionAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 7, e.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)

		totalCommission += e.CommissionAmount
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4]+widths[5], 8, "Total Commission", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[6], 8, fmt.Sprintf("%.0f", totalCommission), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[7], 8, "", "1", 0, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	filename := fmt.Sprintf("commission-report-%s.pdf", startDate.Format("2006-01"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/pdf", buf.Bytes())
}
