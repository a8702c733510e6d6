package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/wareroom/stockview/internal/gateway"
	"github.com/wareroom/stockview/internal/logging"
	"github.com/wareroom/stockview/internal/metrics"
	"github.com/wareroom/stockview/internal/render"
	"github.com/wareroom/stockview/internal/report"
	"github.com/wareroom/stockview/internal/tabledoc"
	"github.com/wareroom/stockview/internal/web/middleware"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// renderPage writes a full HTML page from the given body components.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, title string, body ...templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := render.Layout(title, templ.Join(body...))
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "title", title, "error", err)
	}
}

// handleReport renders the dashboard with the four summary counters.
// Items and export records are fetched concurrently; a failed fetch falls
// back to an empty collection and surfaces a notice.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())

	var (
		items      []gateway.Item
		exports    []gateway.ExportRecord
		itemsErr   error
		exportsErr error
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		items, itemsErr = s.backend.ItemsByAdmin(ctx, sess.AdminID)
		return nil
	})
	g.Go(func() error {
		exports, exportsErr = s.backend.Exports(ctx, sess.AdminID)
		return nil
	})
	// Fetch failures become notices, not request failures.
	_ = g.Wait()

	summary := report.Summarize(items, exports)

	var body []templ.Component
	if itemsErr != nil || exportsErr != nil {
		logging.FromContext(r.Context()).Warn("report data incomplete",
			"items_error", errString(itemsErr),
			"exports_error", errString(exportsErr),
		)
		body = append(body, render.Notice("Could not load report data. Figures may be incomplete."))
	}
	body = append(body, render.StatCards(summary))

	s.renderPage(w, r, "Inventory Report", body...)
}

// handleProducts renders the product cards, optionally filtered by the q
// search parameter.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	query := r.URL.Query().Get("q")

	var (
		items []gateway.Item
		err   error
	)
	if query != "" {
		items, err = s.backend.SearchItems(r.Context(), sess.AdminID, query)
	} else {
		items, err = s.backend.ItemsByAdmin(r.Context(), sess.AdminID)
	}

	body := []templ.Component{render.SearchForm(query)}
	if err != nil {
		logging.FromContext(r.Context()).Warn("products fetch failed", "query", query, "error", err)
		body = append(body, render.Notice("Error loading products. "+MapError(err).Action+"."))
	}
	body = append(body, render.ProductCards(items))

	s.renderPage(w, r, "Products", body...)
}

// handleRecords renders the import and export record tables with their
// download links.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())

	var (
		imports    []gateway.ImportRecord
		exports    []gateway.ExportRecord
		importsErr error
		exportsErr error
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		imports, importsErr = s.backend.Imports(ctx, sess.AdminID)
		return nil
	})
	g.Go(func() error {
		exports, exportsErr = s.backend.Exports(ctx, sess.AdminID)
		return nil
	})
	_ = g.Wait()

	var body []templ.Component
	if importsErr != nil || exportsErr != nil {
		logging.FromContext(r.Context()).Warn("records fetch incomplete",
			"imports_error", errString(importsErr),
			"exports_error", errString(exportsErr),
		)
		body = append(body, render.Notice("Could not load Import/Export records."))
	}
	body = append(body,
		render.RecordSection("Import Records", render.ImportsTable(imports),
			"No Import records found.", "/records/imports.docx"),
		render.RecordSection("Export Records", render.ExportsTable(exports),
			"No Export records found.", "/records/exports.docx"),
	)

	s.renderPage(w, r, "Imports & Exports", body...)
}

// handleDownloadImports serves the import records as a DOCX download.
func (s *Server) handleDownloadImports(w http.ResponseWriter, r *http.Request) {
	s.serveTableDocx(w, r, "imports", "Import Records", "imports.docx",
		func(ctx context.Context, adminID string) (*tabledoc.Table, error) {
			records, err := s.backend.Imports(ctx, adminID)
			if err != nil {
				return nil, err
			}
			return render.ImportsTable(records), nil
		})
}

// handleDownloadExports serves the export records as a DOCX download.
func (s *Server) handleDownloadExports(w http.ResponseWriter, r *http.Request) {
	s.serveTableDocx(w, r, "exports", "Export Records", "exports.docx",
		func(ctx context.Context, adminID string) (*tabledoc.Table, error) {
			records, err := s.backend.Exports(ctx, adminID)
			if err != nil {
				return nil, err
			}
			return render.ExportsTable(records), nil
		})
}

// serveTableDocx fetches a collection, builds its table model, and serves
// the generated document as an attachment. Unlike page rendering, a fetch
// failure here is a request failure: a download cannot fall back to an
// empty state without producing a misleading file.
func (s *Server) serveTableDocx(w http.ResponseWriter, r *http.Request, kind, title, filename string,
	build func(ctx context.Context, adminID string) (*tabledoc.Table, error),
) {
	sess := middleware.SessionFrom(r.Context())

	tbl, err := build(r.Context(), sess.AdminID)
	if err != nil {
		metrics.DocumentExports.WithLabelValues(kind, "fetch_error").Inc()
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	start := time.Now()
	payload, err := tabledoc.ExportDocx(tbl, title)
	if err != nil {
		metrics.DocumentExports.WithLabelValues(kind, "error").Inc()
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	metrics.DocumentExports.WithLabelValues(kind, "ok").Inc()
	metrics.ExportDuration.Observe(time.Since(start).Seconds())

	logging.FromContext(r.Context()).Info("document export",
		"kind", kind,
		"rows", tbl.RowCount(),
		"bytes", len(payload),
	)

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	if _, err := w.Write(payload); err != nil {
		logging.FromContext(r.Context()).Error("write document", "kind", kind, "error", err)
	}
}

// handleLogin renders the login surface unauthenticated users are sent to.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "Sign in", render.LoginPage())
}

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck // best effort
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
