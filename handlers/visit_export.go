package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/report"
)

// ExportVisitsToExcel writes the full visit history as an xlsx
// download, one row per visit with its decoded completion figures.
// Admin-only.
func ExportVisitsToExcel(w http.ResponseWriter, r *http.Request) {
	var visits []models.Visit
	if err := config.DB.WithContext(r.Context()).
		Preload("Site").
		Preload("Profile").
		Order("visit_date DESC").
		Find(&visits).Error; err != nil {
		http.Error(w, "failed to fetch visits", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	sheet := "Visits"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Visit ID", "Date", "Site", "Address", "Staff", "Completed", "Total", "Percentage", "Grade"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, v := range visits {
		summary := report.Decode(v.Notes)

		siteName, siteAddress := "unknown", ""
		if v.Site != nil {
			siteName, siteAddress = v.Site.Name, v.Site.Address
		}
		staffName := "unknown"
		if v.Profile != nil {
			staffName = v.Profile.FullName
		}

		values := []interface{}{
			v.ID,
			v.VisitDate.Format("2006-01-02"),
			siteName,
			siteAddress,
			staffName,
			summary.Completed,
			summary.Total,
			summary.Percentage,
			string(summary.Grade),
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("visit_history_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
