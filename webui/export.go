package webui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"roadwaysledger/ledger"
	"roadwaysledger/metrics"
	"roadwaysledger/models"
	"roadwaysledger/utils"
	"roadwaysledger/view"
)

type exporter struct {
	format      string
	filename    string
	contentType string
	write       func(ctx context.Context, app *ledger.App, w io.Writer, records []models.Bilty) error
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, exporter{
		format:      "csv",
		filename:    view.CSVFilename,
		contentType: "text/csv;charset=utf-8",
		write: func(_ context.Context, _ *ledger.App, w io.Writer, records []models.Bilty) error {
			return view.WriteCSV(w, records, s.DateFormat)
		},
	})
}

func (s *Server) exportXLSX(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, exporter{
		format:      "xlsx",
		filename:    view.XLSXFilename,
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		write: func(_ context.Context, _ *ledger.App, w io.Writer, records []models.Bilty) error {
			return view.WriteXLSX(w, records, s.DateFormat)
		},
	})
}

func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, exporter{
		format:      "pdf",
		filename:    view.PDFFilename,
		contentType: "application/pdf",
		write: func(ctx context.Context, app *ledger.App, w io.Writer, records []models.Bilty) error {
			if s.PrintPDF == nil {
				return errors.New("pdf printing is not configured")
			}
			profile, err := app.CompanyProfile(ctx)
			if err != nil {
				// the heading falls back to the configured name
				s.Log.Warn("company profile unavailable", "error", err)
			}
			data := utils.NewLedgerPDFData(profile, s.CompanyName, records, s.DateFormat, s.Now())
			pdf, err := s.PrintPDF(ctx, data)
			if err != nil {
				return err
			}
			_, err = w.Write(pdf)
			return err
		},
	})
}

// export serializes the store, optionally archives the file, and offers it
// as a download. Only a logged in session may export; an empty store
// redirects back with a notice.
func (s *Server) export(w http.ResponseWriter, r *http.Request, e exporter) {
	app, ok := s.requireLogin(w, r)
	if !ok {
		return
	}
	records := app.Records()
	if len(records) == 0 {
		metrics.ObserveExport(e.format, "empty")
		app.Notify("No data to export.", true)
		s.home(w, r)
		return
	}

	var buf bytes.Buffer
	if err := e.write(r.Context(), app, &buf, records); err != nil {
		metrics.ObserveExport(e.format, "error")
		s.Log.Error("export failed", "format", e.format, "error", err)
		app.Notify("Export failed: "+err.Error(), true)
		s.home(w, r)
		return
	}
	metrics.ObserveExport(e.format, "ok")

	if s.Archiver != nil {
		if _, err := s.Archiver.Archive(r.Context(), e.filename, buf.Bytes(), e.contentType); err != nil {
			s.Log.Warn("export archive failed", "format", e.format, "error", err)
		}
	}

	app.Notify("Data exported successfully!", false)
	w.Header().Set("Content-Type", e.contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+e.filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
