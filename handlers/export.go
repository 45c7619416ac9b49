package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"serviceorders/services"
)

// buildExportData renders the open session when there is one, so the
// document matches what the user sees; otherwise the stored order.
func (env *Env) buildExportData(orderID string) (services.ExportData, error) {
	if s, ok := env.Sessions.Registry().Get(orderID); ok {
		snapshot, _, _ := s.Snapshot()
		return services.BuildExportData(snapshot, time.Now()), nil
	}
	o, err := env.Orders.Load(orderID)
	if err != nil {
		return services.ExportData{}, err
	}
	return services.BuildExportData(o, time.Now()), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

func exportFilename(data services.ExportData, ext string) string {
	name := data.OrderNumber
	if name == "" {
		name = data.Title
	}
	return fmt.Sprintf("OS_%s.%s", sanitizeFilename(name), ext)
}

// HandleOrderExportExcel returns a handler that generates and downloads an Excel file for an order.
func HandleOrderExportExcel(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("id")
		if orderID == "" {
			return e.String(http.StatusBadRequest, "Missing order ID")
		}

		data, err := env.buildExportData(orderID)
		if err != nil {
			env.Log.Warn("export_excel: order not available", zap.String("order", orderID), zap.Error(err))
			return e.String(http.StatusNotFound, "Order not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			env.Log.Error("export_excel: failed to generate", zap.Error(err))
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "xlsx")))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// HandleOrderExportPDF returns a handler that generates and downloads a PDF file for an order.
func HandleOrderExportPDF(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("id")
		if orderID == "" {
			return e.String(http.StatusBadRequest, "Missing order ID")
		}

		data, err := env.buildExportData(orderID)
		if err != nil {
			env.Log.Warn("export_pdf: order not available", zap.String("order", orderID), zap.Error(err))
			return e.String(http.StatusNotFound, "Order not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			env.Log.Error("export_pdf: failed to generate", zap.Error(err))
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "pdf")))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}
