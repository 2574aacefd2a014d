package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/fortresspm/bookkeeping_backend/internal/apperrors"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const csvDateLayout = "02/01/2006"

// reportHandler handles HTTP requests for the bank-ledger report.
type reportHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(ledgerService portssvc.LedgerSvcFacade) *reportHandler {
	return &reportHandler{
		ledgerService: ledgerService,
	}
}

// bankLedger renders the statement as JSON or as a CSV download depending on
// the format parameter.
func (h *reportHandler) bankLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ReportLedgerParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid bank ledger parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report parameters"})
		return
	}

	switch params.Format {
	case "", "json":
	case "csv":
		// The export needs the person column regardless of what the caller
		// asked for.
		params.Detailed = true
	default:
		logger.Warn("Unknown report format", slog.String("format", params.Format))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Unknown report format %q", params.Format)})
		return
	}

	report, ok := h.buildReport(c, params)
	if !ok {
		return
	}

	if params.Format == "csv" {
		h.writeCSV(c, params, report)
		return
	}

	c.JSON(http.StatusOK, report)
}

// exportBankLedger is the dedicated CSV download route. The format parameter
// defaults to csv here; anything else is rejected.
func (h *reportHandler) exportBankLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ReportLedgerParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid bank ledger export parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report parameters"})
		return
	}

	if params.Format != "" && params.Format != "csv" {
		logger.Warn("Unknown export format", slog.String("format", params.Format))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Unknown report format %q", params.Format)})
		return
	}
	params.Format = "csv"
	params.Detailed = true

	report, ok := h.buildReport(c, params)
	if !ok {
		return
	}
	h.writeCSV(c, params, report)
}

// buildReport runs the ledger service and writes the error response itself
// when the report cannot be built.
func (h *reportHandler) buildReport(c *gin.Context, params dto.ReportLedgerParams) (*dto.BankLedgerReportResponse, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.ledgerService.BankLedgerReport(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error building bank ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Financial account not found for bank ledger")
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial account not found"})
		default:
			logger.Error("Failed to build bank ledger report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		}
		return nil, false
	}
	return report, true
}

// writeCSV streams the statement as a CSV download. The layout mirrors the
// spreadsheet the bookkeeping team works with: a heading block, a blank line,
// the row table and a closing totals line.
func (h *reportHandler) writeCSV(c *gin.Context, params dto.ReportLedgerParams, report *dto.BankLedgerReportResponse) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filename := fmt.Sprintf("extrato-detalhado-%s-%s.csv", slugify(report.Account.Name), time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	records := [][]string{
		{"Conta", report.Account.Name},
		{"Período", formatPeriod(report.Period)},
		{"Saldo inicial", report.OpeningBalance.StringFixed(2)},
		{},
		{"Data", "Fornecedor", "Descrição", "Imóvel", "Vencimento", "Status", "Valor"},
	}

	// Expense statements print magnitudes and total them over every row;
	// income statements keep the sign.
	expense := params.ExpenseReport()
	absoluteTotal := decimal.Zero
	signedTotal := decimal.Zero
	for _, row := range report.Data {
		person := ""
		if row.Person != nil {
			person = row.Person.Name
		}
		property := ""
		if row.Property != nil {
			property = row.Property.Name
		}
		signed := row.AmountIn.Sub(row.AmountOut)
		absolute := row.AmountIn.Add(row.AmountOut)
		signedTotal = signedTotal.Add(signed)
		absoluteTotal = absoluteTotal.Add(absolute)
		value := signed
		if expense {
			value = absolute
		}
		records = append(records, []string{
			reformatDate(row.MovementDate),
			person,
			row.Description,
			property,
			reformatDate(row.DueDate),
			row.StatusLabel,
			value.StringFixed(2),
		})
	}

	if expense {
		records = append(records, []string{"TOTAL DAS DESPESAS", "", "", "", "", "", absoluteTotal.StringFixed(2)})
	} else {
		records = append(records, []string{"TOTAL DE RECEITAS", "", "", "", "", "", signedTotal.StringFixed(2)})
	}

	if err := w.WriteAll(records); err != nil {
		logger.Error("Failed to write CSV export", slog.String("error", err.Error()))
	}
}

func formatPeriod(p dto.PeriodRef) string {
	from := ""
	if p.From != nil {
		from = *p.From
	}
	to := ""
	if p.To != nil {
		to = *p.To
	}
	if from == "" && to == "" {
		return "Todo o período"
	}
	return from + " a " + to
}

// reformatDate converts a wire date (2006-01-02) into the spreadsheet form
// (02/01/2006), passing unparseable values through untouched.
func reformatDate(wire string) string {
	t, err := time.Parse("2006-01-02", wire)
	if err != nil {
		return wire
	}
	return t.Format(csvDateLayout)
}

// slugify lowercases the name and collapses anything non-alphanumeric into
// single dashes for use in a filename.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// registerReportRoutes registers reporting routes.
func registerReportRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportHandler(ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/bank-ledger", h.bankLedger)
		reports.GET("/bank-ledger/export", h.exportBankLedger)
	}
}
