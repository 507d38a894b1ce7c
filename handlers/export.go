package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/models"
)

var exportHeaders = []string{
	"No", "Tanggal", "Nama Lengkap", "Email", "Gender", "WhatsApp", "Alamat",
	"OPD", "Jenis Pohon", "Kategori", "Jumlah Pohon", "Latitude", "Longitude",
}

var indonesianMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// formatTanggal renders t as "02 Jan 2006" with Indonesian month names.
func formatTanggal(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// exportRows returns one record per registration in exportHeaders order.
func exportRows(regs []models.TreeRegistration, loc *time.Location) [][]interface{} {
	rows := make([][]interface{}, len(regs))
	for i, reg := range regs {
		rows[i] = []interface{}{
			i + 1,
			formatTanggal(reg.CreatedAt.In(loc)),
			reg.FullName,
			reg.Email,
			reg.Gender,
			reg.WhatsApp,
			reg.Address,
			reg.OPDName(),
			reg.TreeType,
			reg.TreeCategory,
			reg.TreeCount,
			formatCoord(reg.Latitude),
			formatCoord(reg.Longitude),
		}
	}
	return rows
}

// loadExport fetches the registrations to export and answers 404 when there
// are none.
func (a *API) loadExport(w http.ResponseWriter, r *http.Request) ([]models.TreeRegistration, bool) {
	params, err := models.ParseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	regs, err := a.regs.All(r.Context(), params.OPDID)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	if len(regs) == 0 {
		writeError(w, http.StatusNotFound, "tidak ada data untuk diekspor")
		return nil, false
	}
	return regs, true
}

func (a *API) exportFilename(ext string) string {
	return fmt.Sprintf("data-pohon-%s.%s", a.now().In(a.opts.Location).Format("2006-01-02"), ext)
}

// ExportXLSX godoc
// @Summary      Export registrations to Excel
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        opd_id  query  string  false  "filter by OPD"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/registrations/export.xlsx [get]
func (a *API) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	regs, ok := a.loadExport(w, r)
	if !ok {
		return
	}

	f, err := createRegistrationWorkbook(exportRows(regs, a.opts.Location))
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("build workbook: %w", err))
		return
	}
	defer f.Close()

	buffer, err := f.WriteToBuffer()
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("write workbook: %w", err))
		return
	}

	logger.LogAction("export_xlsx", r, map[string]interface{}{"rows": len(regs)})
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", a.exportFilename("xlsx")))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

const exportSheet = "Data Pohon"

func createRegistrationWorkbook(rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"15803D"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	widths := []float64{5, 14, 25, 30, 12, 16, 40, 30, 18, 10, 12, 12, 12}
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, col, col, widths[i])
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", last, headerStyle)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return f, nil
}

// ExportCSV godoc
// @Summary      Export registrations to CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        opd_id  query  string  false  "filter by OPD"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/registrations/export.csv [get]
func (a *API) ExportCSV(w http.ResponseWriter, r *http.Request) {
	regs, ok := a.loadExport(w, r)
	if !ok {
		return
	}

	csvData, err := createCSVFile(exportRows(regs, a.opts.Location))
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("build csv: %w", err))
		return
	}

	logger.LogAction("export_csv", r, map[string]interface{}{"rows": len(regs)})
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", a.exportFilename("csv")))
	w.Header().Set("Content-Length", strconv.Itoa(len(csvData)))
	w.WriteHeader(http.StatusOK)
	w.Write(csvData)
}

func createCSVFile(rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	// BOM so spreadsheet apps detect UTF-8
	buf.WriteString("\uFEFF")
	writer := csv.NewWriter(&buf)

	writer.Write(exportHeaders)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprintf("%v", v)
		}
		writer.Write(record)
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
