package handler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/api_gateway/service"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

// ReportHandler handles HTTP requests for the derived financial views.
// Reports are recomputed per request; an imbalanced result is reported
// through the payload's balanced flag, never as an HTTP error.
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Ledger serves the per-account ledger view. With ?account= it narrows
// to a single account; an account with no postings in range yields an
// empty ledger, not a 404.
func (h *ReportHandler) Ledger(c *gin.Context) {
	var params LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	filter, err := parseDateFilter(params.RangeParams)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	if params.Account != "" {
		ledger, err := h.reportService.AccountLedger(c.Request.Context(), params.Account, filter)
		if err != nil {
			h.logger.Error("Failed to compute account ledger", "account", params.Account, "error", err)
			RespondInternalError(c)
			return
		}
		RespondOK(c, ledger)
		return
	}

	ledger, err := h.reportService.Ledger(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to compute ledger", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{"accounts": ledger})
}

// TrialBalance serves account balances as of the optional cutoff date
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	var params TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	filter, err := parseDateFilter(params.RangeParams)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	asOf, err := parseDate(params.AsOf)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	tb, err := h.reportService.TrialBalance(c.Request.Context(), filter, asOf)
	if err != nil {
		h.logger.Error("Failed to compute trial balance", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, tb)
}

// IncomeStatement serves net revenues and expenses over the range
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	var params RangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	filter, err := parseDateFilter(params)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	is, err := h.reportService.IncomeStatement(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to compute income statement", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, is)
}

// BalanceSheet serves the accounting equation view over the range
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	var params RangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	filter, err := parseDateFilter(params)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	bs, err := h.reportService.BalanceSheet(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to compute balance sheet", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, bs)
}

// parseDate parses an optional query date, nil when absent
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(shared.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected %s", value, shared.DateLayout)
	}
	return &t, nil
}

// parseDateFilter converts the from/to query bounds into the inclusive
// domain date filter
func parseDateFilter(params RangeParams) (journal.DateFilter, error) {
	from, err := parseDate(params.From)
	if err != nil {
		return journal.DateFilter{}, err
	}
	to, err := parseDate(params.To)
	if err != nil {
		return journal.DateFilter{}, err
	}
	return journal.DateFilter{From: from, To: to}, nil
}
