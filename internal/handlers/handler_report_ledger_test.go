package handlers_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/fortresspm/bookkeeping_backend/internal/handlers"
	"github.com/fortresspm/bookkeeping_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) OpeningBalance(ctx context.Context, filter domain.EntryFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) BuildRows(entries []domain.JournalEntry, openingBalance decimal.Decimal) []domain.LedgerRow {
	args := m.Called(entries, openingBalance)
	return args.Get(0).([]domain.LedgerRow)
}

func (m *MockLedgerService) Totals(rows []domain.LedgerRow) domain.LedgerTotals {
	args := m.Called(rows)
	return args.Get(0).(domain.LedgerTotals)
}

func (m *MockLedgerService) PropertyLabel(entry domain.JournalEntry) string {
	args := m.Called(entry)
	return args.String(0)
}

func (m *MockLedgerService) BankLedgerReport(ctx context.Context, params dto.ReportLedgerParams) (*dto.BankLedgerReportResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BankLedgerReportResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type ReportHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
	userID            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ReportHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bookkeeping-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Ledger: suite.mockLedgerService,
	})
}

func (suite *ReportHandlerTestSuite) doExport(query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/bank-ledger/export"+query, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReportHandlerTestSuite) readCSV(w *httptest.ResponseRecorder) [][]string {
	r := csv.NewReader(w.Body)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	suite.Require().NoError(err)
	return records
}

func ledgerRow(description string, in, out float64) dto.LedgerRowResponse {
	return dto.LedgerRowResponse{
		EntryID:      uuid.NewString(),
		MovementDate: "2026-08-05",
		DueDate:      "2026-08-15",
		Description:  description,
		AmountIn:     decimal.NewFromFloat(in),
		AmountOut:    decimal.NewFromFloat(out),
		StatusLabel:  "Aberto",
	}
}

func (suite *ReportHandlerTestSuite) TestExportExpenseReportTotalsAbsoluteValues() {
	// Without a type filter the export is an expense statement: every row
	// prints its magnitude and the total sums magnitudes over all rows,
	// income included.
	report := &dto.BankLedgerReportResponse{
		Account:        dto.AccountRef{Name: "Banco Alfa"},
		OpeningBalance: decimal.NewFromInt(1000),
		Totals: dto.TotalsRef{
			Inflow:  decimal.NewFromFloat(40.00),
			Outflow: decimal.NewFromFloat(150.00),
			Net:     decimal.NewFromFloat(-110.00),
		},
		Data: []dto.LedgerRowResponse{
			ledgerRow("Condomínio", 0, 150.00),
			ledgerRow("Aluguel", 40.00, 0),
		},
	}

	suite.mockLedgerService.On("BankLedgerReport", mock.Anything, mock.MatchedBy(func(p dto.ReportLedgerParams) bool {
		return p.Format == "csv" && p.Detailed
	})).Return(report, nil).Once()

	w := suite.doExport("")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "extrato-detalhado-banco-alfa")

	records := suite.readCSV(w)
	// Heading block, column header, two rows, total. The blank separator line
	// is skipped by the CSV reader.
	suite.Require().Len(records, 7)
	suite.Equal([]string{"Conta", "Banco Alfa"}, records[0])
	suite.Equal("1000.00", records[2][1])
	suite.Equal("05/08/2026", records[4][0])
	suite.Equal("150.00", records[4][6])
	suite.Equal("40.00", records[5][6])
	suite.Equal("TOTAL DAS DESPESAS", records[6][0])
	suite.Equal("190.00", records[6][6])
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestExportIncomeReportKeepsSignedValues() {
	report := &dto.BankLedgerReportResponse{
		Account:        dto.AccountRef{Name: "Banco Beta"},
		OpeningBalance: decimal.Zero,
		Data: []dto.LedgerRowResponse{
			ledgerRow("Aluguel", 250.00, 0),
			ledgerRow("Estorno", 0, 100.00),
		},
	}

	suite.mockLedgerService.On("BankLedgerReport", mock.Anything, mock.MatchedBy(func(p dto.ReportLedgerParams) bool {
		return p.Type != nil && *p.Type == "receita"
	})).Return(report, nil).Once()

	w := suite.doExport("?type=receita")

	suite.Equal(http.StatusOK, w.Code)

	records := suite.readCSV(w)
	suite.Require().Len(records, 7)
	suite.Equal("250.00", records[4][6])
	suite.Equal("-100.00", records[5][6])
	suite.Equal("TOTAL DE RECEITAS", records[6][0])
	suite.Equal("150.00", records[6][6])
}

func (suite *ReportHandlerTestSuite) TestExportRejectsUnknownFormat() {
	w := suite.doExport("?format=pdf")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "BankLedgerReport", mock.Anything, mock.Anything)
}

func TestReportHandler(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
