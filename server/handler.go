package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
	"github.com/orayew2002/rast-attendance/processor"
	"github.com/orayew2002/rast-attendance/report"
	"github.com/orayew2002/rast-attendance/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the attendance processing API.
type Handler struct {
	proc      *processor.Processor
	runs      *RunStore
	store     storage.Store
	maxUpload int64
	logger    *slog.Logger
}

// NewHandler creates a Handler. store may be nil to disable report archiving.
func NewHandler(proc *processor.Processor, store storage.Store, maxUpload int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		proc:      proc,
		runs:      NewRunStore(),
		store:     store,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

type runResponse struct {
	*Run
	Stats     domain.Stats           `json:"stats"`
	Employees []domain.EmployeeGroup `json:"employees"`
}

func newRunResponse(run *Run) runResponse {
	return runResponse{Run: run, Stats: run.Result.Stats, Employees: run.Result.Groups}
}

// Process accepts a multipart upload in the "file" field, replaces the current
// run with the result and returns it.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.logger.Error("Failed to parse multipart form", "error", err)
		BadRequest(w, fmt.Sprintf("File too large or malformed form. Maximum size is %dMB.", h.maxUpload>>20))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequest(w, "Missing 'file' field in form data.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", "error", err)
		BadRequest(w, "Could not read file.")
		return
	}

	if err := h.runs.Begin(); err != nil {
		HandleError(w, err)
		return
	}

	result, err := h.proc.ProcessBytes(data, header.Filename)
	if err != nil {
		h.runs.Finish(nil)
		HandleError(w, err)
		return
	}

	run := &Run{
		ID:          uuid.NewString(),
		FileName:    header.Filename,
		ProcessedAt: time.Now().UTC(),
		Result:      result,
	}
	run.Archive = h.archive(r.Context(), run)
	h.runs.Finish(run)

	Created(w, "File processed", newRunResponse(run))
}

// archive stores both reports of run. Failures are logged and skipped, the run
// itself already succeeded.
func (h *Handler) archive(ctx context.Context, run *Run) []storage.FileInfo {
	if h.store == nil {
		return nil
	}

	var stored []storage.FileInfo
	for _, wb := range []*excel.OutputWorkbook{
		report.BuildDetailed(run.Result.Groups),
		report.BuildSummary(run.Result.Groups),
	} {
		data, err := excel.WriteBytes(wb)
		if err != nil {
			h.logger.Warn("Failed to build report for archive", "run_id", run.ID, "report", wb.FileName, "error", err)
			continue
		}

		info, err := h.store.Save(ctx, storage.Report{
			RunID:       run.ID,
			Name:        wb.FileName,
			ContentType: xlsxContentType,
			Body:        data,
		})
		if err != nil {
			h.logger.Warn("Failed to archive report", "run_id", run.ID, "report", wb.FileName, "error", err)
			continue
		}
		stored = append(stored, *info)
	}

	return stored
}

// Run returns the current run with all employee groups.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	run, err := h.runs.Current()
	if err != nil {
		HandleError(w, err)
		return
	}
	Success(w, newRunResponse(run))
}

// Employee returns one employee group of the current run.
func (h *Handler) Employee(w http.ResponseWriter, r *http.Request) {
	run, err := h.runs.Current()
	if err != nil {
		HandleError(w, err)
		return
	}

	code := chi.URLParam(r, "code")
	group, ok := run.Result.Group(code)
	if !ok {
		NotFound(w, fmt.Sprintf("Employee %q not found", code))
		return
	}
	Success(w, group)
}

// DetailedReport downloads the per-day attendance ledger workbook.
func (h *Handler) DetailedReport(w http.ResponseWriter, r *http.Request) {
	h.workbook(w, report.BuildDetailed)
}

// SummaryReport downloads the per-employee summary workbook.
func (h *Handler) SummaryReport(w http.ResponseWriter, r *http.Request) {
	h.workbook(w, report.BuildSummary)
}

// LedgerCSV downloads the flat per-day ledger as CSV.
func (h *Handler) LedgerCSV(w http.ResponseWriter, r *http.Request) {
	run, err := h.runs.Current()
	if err != nil {
		HandleError(w, err)
		return
	}

	data, err := report.LedgerCSV(run.Result.Groups)
	if err != nil {
		h.logger.Error("Failed to build ledger csv", "run_id", run.ID, "error", err)
		InternalServerError(w, "Failed to build ledger")
		return
	}
	attachment(w, report.LedgerFileName, "text/csv", data)
}

func (h *Handler) workbook(w http.ResponseWriter, build func([]domain.EmployeeGroup) *excel.OutputWorkbook) {
	run, err := h.runs.Current()
	if err != nil {
		HandleError(w, err)
		return
	}

	wb := build(run.Result.Groups)
	data, err := excel.WriteBytes(wb)
	if err != nil {
		h.logger.Error("Failed to write report", "run_id", run.ID, "report", wb.FileName, "error", err)
		InternalServerError(w, "Failed to build report")
		return
	}
	attachment(w, wb.FileName, xlsxContentType, data)
}

func attachment(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
