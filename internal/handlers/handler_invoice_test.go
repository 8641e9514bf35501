package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/dto"
	"github.com/warehousing/invoicing_backend/internal/handlers"
	"github.com/warehousing/invoicing_backend/pkg/config"
)

// --- Mock InvoiceSvcFacade ---

type MockInvoiceSvc struct {
	mock.Mock
}

func (m *MockInvoiceSvc) GetInvoice(ctx context.Context, seq string) (*domain.Invoice, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceSvc) GetInvoiceDetails(ctx context.Context, seq string) (*dto.InvoiceDetailsResponse, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InvoiceDetailsResponse), args.Error(1)
}

func (m *MockInvoiceSvc) ListInvoices(ctx context.Context) ([]dto.InvoiceSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.InvoiceSummary), args.Error(1)
}

func (m *MockInvoiceSvc) Totals(ctx context.Context, seq string) (*domain.InvoiceTotals, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceTotals), args.Error(1)
}

func (m *MockInvoiceSvc) ListPayments(ctx context.Context, seq string) ([]dto.PaymentResponse, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PaymentResponse), args.Error(1)
}

func (m *MockInvoiceSvc) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceSvc) AddProducts(ctx context.Context, seq string, products []dto.InvoiceProductRequest) error {
	args := m.Called(ctx, seq, products)
	return args.Error(0)
}

func (m *MockInvoiceSvc) AddPayment(ctx context.Context, seq string, platform string, amount decimal.Decimal) (*domain.Invoice, error) {
	args := m.Called(ctx, seq, platform, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceSvc) SetPaid(ctx context.Context, seq string) (*domain.Invoice, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceSvc) ProFormaToReal(ctx context.Context, seq string) (*domain.Invoice, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceSvc) CancelProForma(ctx context.Context, seq string) (*domain.Invoice, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// --- Mock ReconciliationSvc ---

type MockReconciliationSvc struct {
	mock.Mock
}

func (m *MockReconciliationSvc) ProcessStatements(ctx context.Context, documents []string) (*dto.ReconciliationResult, error) {
	args := m.Called(ctx, documents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconciliationResult), args.Error(1)
}

// --- Mock ClientSvc ---

type MockClientSvc struct {
	mock.Mock
}

func (m *MockClientSvc) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientSvc) GetClientByNumber(ctx context.Context, clientNumber int64) (*domain.Client, error) {
	args := m.Called(ctx, clientNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientSvc) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// --- Mock CompanyDetailsSvc ---

type MockCompanySvc struct {
	mock.Mock
}

func (m *MockCompanySvc) CurrentVersion(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanySvc) Current(ctx context.Context) (*domain.CompanyDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyDetails), args.Error(1)
}

func (m *MockCompanySvc) Update(ctx context.Context, req dto.UpdateCompanyDetailsRequest) (*domain.CompanyDetails, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyDetails), args.Error(1)
}

// --- Mock GatewayPaymentSvc ---

type MockGatewaySvc struct {
	mock.Mock
}

func (m *MockGatewaySvc) CreateGatewayPayment(ctx context.Context, seq string, amount decimal.Decimal) (*domain.GatewayTransaction, error) {
	args := m.Called(ctx, seq, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayTransaction), args.Error(1)
}

func (m *MockGatewaySvc) HandleNotification(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

// --- Suite ---

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	invoiceSvc     *MockInvoiceSvc
	reconciliation *MockReconciliationSvc
	clientSvc      *MockClientSvc
	companySvc     *MockCompanySvc
	gatewaySvc     *MockGatewaySvc
}

func (s *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.invoiceSvc = new(MockInvoiceSvc)
	s.reconciliation = new(MockReconciliationSvc)
	s.clientSvc = new(MockClientSvc)
	s.companySvc = new(MockCompanySvc)
	s.gatewaySvc = new(MockGatewaySvc)

	container := &portssvc.ServiceContainer{
		Invoice:        s.invoiceSvc,
		Reconciliation: s.reconciliation,
		Client:         s.clientSvc,
		Company:        s.companySvc,
		GatewayPayment: s.gatewaySvc,
	}
	cfg := &config.Config{UploadRateLimit: "100-M"}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

func (s *InvoiceHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *InvoiceHandlerTestSuite) TestCreateInvoiceReturnsCreated() {
	invoice := &domain.Invoice{ID: 1, SequenceNumber: "2026-001", Status: domain.StatusNew}
	s.invoiceSvc.On("CreateInvoice", mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest")).Return(invoice, nil).Once()

	body := `{
		"clientNumber": 7,
		"title": "Garden supplies",
		"products": [{"name": "Shovel", "sku": "SKU-1", "price": "25.00", "vatPercentage": 21, "quantity": 2}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := s.serve(req)

	s.Equal(http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("2026-001", resp.SequenceNumber)
}

func (s *InvoiceHandlerTestSuite) TestCreateInvoiceRejectsMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	w := s.serve(req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.invoiceSvc.AssertNotCalled(s.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceHandlerTestSuite) TestGetInvoiceNotFound() {
	s.invoiceSvc.On("GetInvoiceDetails", mock.Anything, "2026-404").Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/2026-404", nil)
	w := s.serve(req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *InvoiceHandlerTestSuite) TestCancelRealInvoiceConflicts() {
	s.invoiceSvc.On("CancelProForma", mock.Anything, "2026-001").Return(nil, apperrors.ErrInvalidTransition).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/2026-001/cancel", nil)
	w := s.serve(req)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *InvoiceHandlerTestSuite) TestAddPaymentValidationMapsToBadRequest() {
	s.invoiceSvc.On("AddPayment", mock.Anything, "2026-001", "bank", mock.Anything).Return(nil, apperrors.ErrValidation).Once()

	body := `{"platform": "bank", "amount": "-5.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/2026-001/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := s.serve(req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *InvoiceHandlerTestSuite) TestWebhookAcknowledgesDespiteFailure() {
	s.gatewaySvc.On("HandleNotification", mock.Anything, "tr_abc123").Return(apperrors.ErrUpstream).Once()

	form := "id=tr_abc123"
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := s.serve(req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", w.Body.String())
}

func (s *InvoiceHandlerTestSuite) TestStatementUploadReturnsReconciliationResult() {
	result := &dto.ReconciliationResult{
		Processed: []dto.ProcessedPayment{{SequenceNumber: "2022-005", Amount: decimal.RequireFromString("100.76"), PreviousStatus: domain.StatusReservation}},
		Failed:    []dto.FailedPayment{},
	}
	s.reconciliation.On("ProcessStatements", mock.Anything, mock.AnythingOfType("[]string")).Return(result, nil).Once()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("statements", "statement.swift")
	s.Require().NoError(err)
	_, err = part.Write([]byte(":61:2201020102C100,76NTRFNONREF\n:86:PF-2022-001\n"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.serve(req)

	s.Equal(http.StatusOK, w.Code)

	var got dto.ReconciliationResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Require().Len(got.Processed, 1)
	s.Equal("2022-005", got.Processed[0].SequenceNumber)
}

func (s *InvoiceHandlerTestSuite) TestStatementUploadWithoutFiles() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/import", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=none")
	w := s.serve(req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.reconciliation.AssertNotCalled(s.T(), "ProcessStatements", mock.Anything, mock.Anything)
}

func (s *InvoiceHandlerTestSuite) TestHealthEndpoint() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := s.serve(req)
	s.Equal(http.StatusOK, w.Code)
}

func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
