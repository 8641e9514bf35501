package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/core/services"
)

// --- Mock GatewayTransactionRepository ---

type MockGatewayTxnRepository struct {
	mock.Mock
}

func (m *MockGatewayTxnRepository) SaveTransaction(ctx context.Context, txn domain.GatewayTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockGatewayTxnRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.GatewayTransaction, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayTransaction), args.Error(1)
}

func (m *MockGatewayTxnRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.GatewayTransactionStatus) error {
	args := m.Called(ctx, transactionID, status)
	return args.Error(0)
}

// --- Mock PaymentGateway ---

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePayment(ctx context.Context, invoice *domain.Invoice, amount decimal.Decimal, description string) (*domain.GatewayTransaction, error) {
	args := m.Called(ctx, invoice, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayTransaction), args.Error(1)
}

func (m *MockPaymentGateway) FetchStatus(ctx context.Context, externalID string) (domain.GatewayTransactionStatus, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(domain.GatewayTransactionStatus), args.Error(1)
}

// --- Suite ---

type GatewayPaymentServiceTestSuite struct {
	suite.Suite
	invoiceSvc  *MockInvoiceSvc
	invoiceRepo *MockInvoiceRepository
	txnRepo     *MockGatewayTxnRepository
	gateway     *MockPaymentGateway
	service     portssvc.GatewayPaymentSvc
	ctx         context.Context
}

func (s *GatewayPaymentServiceTestSuite) SetupTest() {
	s.invoiceSvc = new(MockInvoiceSvc)
	s.invoiceRepo = new(MockInvoiceRepository)
	s.txnRepo = new(MockGatewayTxnRepository)
	s.gateway = new(MockPaymentGateway)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = services.NewGatewayPaymentService(s.invoiceSvc, s.invoiceRepo, s.txnRepo, s.gateway, logger)
	s.ctx = context.Background()
}

func (s *GatewayPaymentServiceTestSuite) TestCreateGatewayPaymentPersistsTransaction() {
	invoice := &domain.Invoice{ID: 1, SequenceNumber: "2026-001", Status: domain.StatusNew}
	amount := decimal.RequireFromString("100.76")
	txn := &domain.GatewayTransaction{
		TransactionID: "internal-uuid",
		ExternalID:    "tr_abc123",
		InvoiceID:     1,
		Amount:        amount,
		Status:        domain.GatewayOpen,
		CheckoutURL:   "https://pay.example/tr_abc123",
	}

	s.invoiceSvc.On("GetInvoice", s.ctx, "2026-001").Return(invoice, nil).Once()
	s.gateway.On("CreatePayment", s.ctx, invoice, amount, invoice.Description).Return(txn, nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, *txn).Return(nil).Once()

	created, err := s.service.CreateGatewayPayment(s.ctx, "2026-001", amount)

	s.Require().NoError(err)
	s.Equal(txn, created)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *GatewayPaymentServiceTestSuite) TestCreateGatewayPaymentUnknownInvoice() {
	s.invoiceSvc.On("GetInvoice", s.ctx, "2026-404").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateGatewayPayment(s.ctx, "2026-404", decimal.RequireFromString("10.00"))

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.gateway.AssertNotCalled(s.T(), "CreatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *GatewayPaymentServiceTestSuite) TestNotificationWithUnchangedStatusDoesNothing() {
	stored := &domain.GatewayTransaction{TransactionID: "internal-uuid", ExternalID: "tr_abc123", InvoiceID: 1, Status: domain.GatewayOpen}
	s.txnRepo.On("FindByExternalID", s.ctx, "tr_abc123").Return(stored, nil).Once()
	s.gateway.On("FetchStatus", s.ctx, "tr_abc123").Return(domain.GatewayOpen, nil).Once()

	err := s.service.HandleNotification(s.ctx, "tr_abc123")

	s.Require().NoError(err)
	s.txnRepo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	s.invoiceSvc.AssertNotCalled(s.T(), "SetPaid", mock.Anything, mock.Anything)
}

func (s *GatewayPaymentServiceTestSuite) TestNotificationFlipToPaidMarksInvoicePaid() {
	stored := &domain.GatewayTransaction{TransactionID: "internal-uuid", ExternalID: "tr_abc123", InvoiceID: 1, Status: domain.GatewayOpen}
	invoice := &domain.Invoice{ID: 1, SequenceNumber: "2026-001", Status: domain.StatusSent}

	s.txnRepo.On("FindByExternalID", s.ctx, "tr_abc123").Return(stored, nil).Once()
	s.gateway.On("FetchStatus", s.ctx, "tr_abc123").Return(domain.GatewayPaid, nil).Once()
	s.txnRepo.On("UpdateStatus", s.ctx, "internal-uuid", domain.GatewayPaid).Return(nil).Once()
	s.invoiceRepo.On("FindByID", s.ctx, int64(1)).Return(invoice, nil).Once()
	s.invoiceSvc.On("SetPaid", s.ctx, "2026-001").Return(invoice, nil).Once()

	err := s.service.HandleNotification(s.ctx, "tr_abc123")

	s.Require().NoError(err)
	s.txnRepo.AssertExpectations(s.T())
	s.invoiceSvc.AssertExpectations(s.T())
}

func (s *GatewayPaymentServiceTestSuite) TestNotificationFlipToExpiredOnlyRecordsStatus() {
	stored := &domain.GatewayTransaction{TransactionID: "internal-uuid", ExternalID: "tr_abc123", InvoiceID: 1, Status: domain.GatewayOpen}

	s.txnRepo.On("FindByExternalID", s.ctx, "tr_abc123").Return(stored, nil).Once()
	s.gateway.On("FetchStatus", s.ctx, "tr_abc123").Return(domain.GatewayExpired, nil).Once()
	s.txnRepo.On("UpdateStatus", s.ctx, "internal-uuid", domain.GatewayExpired).Return(nil).Once()

	err := s.service.HandleNotification(s.ctx, "tr_abc123")

	s.Require().NoError(err)
	s.invoiceSvc.AssertNotCalled(s.T(), "SetPaid", mock.Anything, mock.Anything)
}

func TestGatewayPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayPaymentServiceTestSuite))
}
