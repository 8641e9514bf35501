package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
	"github.com/warehousing/invoicing_backend/internal/core/domain"
	"github.com/warehousing/invoicing_backend/internal/core/ports/gateways"
	portsrepo "github.com/warehousing/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/warehousing/invoicing_backend/internal/core/ports/services"
	"github.com/warehousing/invoicing_backend/internal/dto"
	"github.com/warehousing/invoicing_backend/internal/utils/money"
)

// maxTitleLength is the persisted size of an invoice title; longer input is
// truncated, not rejected.
const maxTitleLength = 80

var (
	ErrOnlyProForma    = errors.New("only pro forma invoices can be canceled")
	ErrNotProForma     = errors.New("invoice is not a pro forma invoice")
	ErrEmptyProducts   = errors.New("invoice needs at least one product")
	ErrBadVATRate      = errors.New("vat percentage must be between 0 and 100")
	ErrZeroQuantity    = errors.New("product quantity must not be zero")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrNegativeAmount  = errors.New("payment amount must be positive")
	ErrMissingProdName = errors.New("product name is required")
)

// invoiceService owns the invoice lifecycle: creation with sequence
// allocation, the status state machine, the payment ledger and the monetary
// totals.
type invoiceService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryWithTx
	paymentRepo  portsrepo.PaymentRepository
	platformRepo portsrepo.PaymentPlatformRepository
	clientRepo   portsrepo.ClientRepository
	companySvc   portssvc.CompanyDetailsSvc
	stock        gateways.StockGateway

	now func() time.Time
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	paymentRepo portsrepo.PaymentRepository,
	platformRepo portsrepo.PaymentPlatformRepository,
	clientRepo portsrepo.ClientRepository,
	companySvc portssvc.CompanyDetailsSvc,
	stock gateways.StockGateway,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		platformRepo: platformRepo,
		clientRepo:   clientRepo,
		companySvc:   companySvc,
		stock:        stock,
		now:          time.Now,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// normalizeTitle trims surrounding spaces and truncates to the persisted
// title length.
func normalizeTitle(title string) string {
	title = strings.Trim(title, " ")
	if runes := []rune(title); len(runes) > maxTitleLength {
		return string(runes[:maxTitleLength])
	}
	return title
}

func validateProducts(products []dto.InvoiceProductRequest) error {
	if len(products) == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyProducts)
	}
	for i, p := range products {
		switch {
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("%w: product %d: %s", apperrors.ErrValidation, i, ErrMissingProdName)
		case p.VATPercentage < 0 || p.VATPercentage > 100:
			return fmt.Errorf("%w: product %d: %s", apperrors.ErrValidation, i, ErrBadVATRate)
		case p.Quantity == 0:
			return fmt.Errorf("%w: product %d: %s", apperrors.ErrValidation, i, ErrZeroQuantity)
		case p.Price.IsNegative():
			return fmt.Errorf("%w: product %d: %s", apperrors.ErrValidation, i, ErrNegativePrice)
		}
	}
	return nil
}

// CreateInvoice creates a real or pro-forma invoice. Sequence allocation,
// invoice and product insertion and the stock-system order form a single
// transaction: if the warehouse rejects or is unreachable, nothing is
// persisted.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if err := validateProducts(req.Products); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindByClientNumber(ctx, req.ClientNumber)
	if err != nil {
		return nil, err
	}

	companyVersion, err := s.companySvc.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	// Version 0 means no issuer profile was ever stored; an invoice must
	// snapshot one.
	if companyVersion == 0 {
		return nil, fmt.Errorf("%w: company details are not configured", apperrors.ErrValidation)
	}

	status := domain.StatusNew
	if req.Reservation {
		status = domain.StatusReservation
	}

	now := s.now()
	invoice := &domain.Invoice{
		Title:            normalizeTitle(req.Title),
		Description:      req.Description,
		Status:           status,
		ClientID:         client.ID,
		CompanyDetailsID: companyVersion,
		DateCreated:      now,
		DateDue:          domain.CalculateDateDue(now),
	}

	products := make([]domain.InvoiceProduct, len(req.Products))
	for i, p := range req.Products {
		products[i] = dto.ToProductDomain(p)
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice.SequenceNumber, err = s.invoiceRepo.NextSequenceNumber(ctx, tx, now.Year(), req.Reservation)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.CreateInvoice(ctx, tx, invoice); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.AddProducts(ctx, tx, invoice.ID, products); err != nil {
		return nil, err
	}

	order := gateways.StockOrder{
		Reference:   invoice.SequenceNumber,
		Description: client.Name,
		Status:      invoice.Status,
		Products:    mergeOrderLines(products),
	}
	if err := s.stock.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("registering order %s with warehouse: %w", invoice.SequenceNumber, err)
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return invoice, nil
}

// mergeOrderLines collapses duplicate SKUs into a single order line so the
// warehouse sees one quantity per product.
func mergeOrderLines(products []domain.InvoiceProduct) []gateways.StockOrderProduct {
	var lines []gateways.StockOrderProduct
	index := make(map[string]int)
	for _, p := range products {
		if i, ok := index[p.SKU]; ok {
			lines[i].Quantity += p.Quantity
			continue
		}
		index[p.SKU] = len(lines)
		lines = append(lines, gateways.StockOrderProduct{SKU: p.SKU, Quantity: p.Quantity})
	}
	return lines
}

// GetInvoice retrieves an invoice by sequence number.
func (s *invoiceService) GetInvoice(ctx context.Context, seq string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindBySequenceNumber(ctx, seq)
}

// GetInvoiceDetails retrieves an invoice with its products and totals.
func (s *invoiceService) GetInvoiceDetails(ctx context.Context, seq string) (*dto.InvoiceDetailsResponse, error) {
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return nil, err
	}
	products, err := s.invoiceRepo.FindProducts(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.InvoiceDetailsResponse{
		InvoiceResponse: dto.ToInvoiceResponse(invoice),
		Products:        make([]dto.InvoiceProductResponse, len(products)),
		Totals:          totalsFromProducts(products),
	}
	for i, p := range products {
		resp.Products[i] = dto.InvoiceProductResponse{
			Name:          p.Name,
			SKU:           p.SKU,
			Price:         p.Price,
			VATPercentage: p.VATPercentage,
			Quantity:      p.Quantity,
			VATAmount:     money.Round(p.VATAmount()),
		}
	}
	return resp, nil
}

// ListInvoices returns all invoices with their totals and the computed
// overdue flag: past due and not paid.
func (s *invoiceService) ListInvoices(ctx context.Context) ([]dto.InvoiceSummary, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summaries := make([]dto.InvoiceSummary, len(invoices))
	for i := range invoices {
		products, err := s.invoiceRepo.FindProducts(ctx, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		summaries[i] = dto.InvoiceSummary{
			InvoiceResponse: dto.ToInvoiceResponse(&invoices[i]),
			Overdue:         invoices[i].Overdue(now),
			Totals:          totalsFromProducts(products),
		}
	}
	return summaries, nil
}

// Totals computes the rounded monetary summary of an invoice.
func (s *invoiceService) Totals(ctx context.Context, seq string) (*domain.InvoiceTotals, error) {
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return nil, err
	}
	products, err := s.invoiceRepo.FindProducts(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	totals := totalsFromProducts(products)
	return &totals, nil
}

// totalsFromProducts aggregates line items into the invoice totals.
//
// Each VAT group is rounded independently, while TotalVAT rounds the sum of
// the unrounded group amounts once. These can differ by a cent; the policy
// is preserved deliberately because changing it would alter financial
// output.
func totalsFromProducts(products []domain.InvoiceProduct) domain.InvoiceTotals {
	type groupSums struct {
		taxable decimal.Decimal
		amount  decimal.Decimal
	}

	totalEx := decimal.Zero
	totalVAT := decimal.Zero
	groups := make(map[int]*groupSums)

	for _, p := range products {
		sub := p.Subtotal()
		vat := p.VATAmount()
		totalEx = totalEx.Add(sub)
		totalVAT = totalVAT.Add(vat)

		g, ok := groups[p.VATPercentage]
		if !ok {
			g = &groupSums{taxable: decimal.Zero, amount: decimal.Zero}
			groups[p.VATPercentage] = g
		}
		g.taxable = g.taxable.Add(sub)
		g.amount = g.amount.Add(vat)
	}

	rates := make([]int, 0, len(groups))
	for rate := range groups {
		rates = append(rates, rate)
	}
	sort.Ints(rates)

	vatGroups := make([]domain.VATGroup, 0, len(rates))
	for _, rate := range rates {
		vatGroups = append(vatGroups, domain.VATGroup{
			Percentage: rate,
			Taxable:    money.Round(groups[rate].taxable),
			Amount:     money.Round(groups[rate].amount),
		})
	}

	return domain.InvoiceTotals{
		TotalPriceWithoutVAT: money.Round(totalEx),
		TotalPrice:           money.Round(totalEx.Add(totalVAT)),
		TotalVAT:             money.Round(totalVAT),
		VAT:                  vatGroups,
	}
}

// AddProducts bulk-appends line items to an invoice. No status effect.
func (s *invoiceService) AddProducts(ctx context.Context, seq string, products []dto.InvoiceProductRequest) error {
	if err := validateProducts(products); err != nil {
		return err
	}
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return err
	}

	rows := make([]domain.InvoiceProduct, len(products))
	for i, p := range products {
		rows[i] = dto.ToProductDomain(p)
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	if err := s.invoiceRepo.AddProducts(ctx, tx, invoice.ID, rows); err != nil {
		return err
	}
	return s.invoiceRepo.Commit(ctx, tx)
}

// AddPayment appends a payment to the ledger and, inside the same row-locked
// transaction, transitions the invoice to paid once the payment sum covers
// the total. A canceled invoice is never un-canceled by a late payment.
func (s *invoiceService) AddPayment(ctx context.Context, seq string, platform string, amount decimal.Decimal) (*domain.Invoice, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
	}

	plat, err := s.platformRepo.FindByName(ctx, platform)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return nil, err
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	// The row lock serializes concurrent payments and makes cancellation
	// and payment application mutually exclusive.
	locked, err := s.invoiceRepo.FindForUpdate(ctx, tx, invoice.ID)
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		InvoiceID:   locked.ID,
		PlatformID:  plat.ID,
		Amount:      money.Round(amount),
		DateCreated: s.now(),
	}
	if err := s.paymentRepo.AddPayment(ctx, tx, payment); err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.SumPayments(ctx, tx, locked.ID)
	if err != nil {
		return nil, err
	}
	products, err := s.invoiceRepo.FindProducts(ctx, locked.ID)
	if err != nil {
		return nil, err
	}
	totals := totalsFromProducts(products)

	if paid.GreaterThanOrEqual(totals.TotalPrice) && locked.Status != domain.StatusCanceled {
		if err := s.invoiceRepo.UpdateStatus(ctx, tx, locked.ID, domain.StatusPaid); err != nil {
			return nil, err
		}
		locked.Status = domain.StatusPaid
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return locked, nil
}

// SetPaid marks an invoice paid. Pro-forma invoices are first converted to a
// real invoice (fresh real sequence number, status new, recomputed due
// date). Calling SetPaid on an invoice that is already paid is a no-op, which
// makes repeated gateway notifications harmless.
func (s *invoiceService) SetPaid(ctx context.Context, seq string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return nil, err
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	locked, err := s.invoiceRepo.FindForUpdate(ctx, tx, invoice.ID)
	if err != nil {
		return nil, err
	}
	if locked.Status == domain.StatusPaid {
		return locked, s.invoiceRepo.Commit(ctx, tx)
	}

	previous := locked.Status
	if locked.IsProForma() {
		if err := s.reissueAsReal(ctx, tx, locked); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, tx, locked.ID, domain.StatusPaid); err != nil {
		return nil, err
	}
	locked.Status = domain.StatusPaid
	locked.PreviousStatus = previous

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return locked, nil
}

// reissueAsReal moves a pro-forma invoice into the real series: new real
// sequence number, status new, due date recomputed from now.
func (s *invoiceService) reissueAsReal(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error {
	now := s.now()
	seq, err := s.invoiceRepo.NextSequenceNumber(ctx, tx, now.Year(), false)
	if err != nil {
		return err
	}
	dateDue := domain.CalculateDateDue(now)
	if err := s.invoiceRepo.Reissue(ctx, tx, invoice.ID, seq, domain.StatusNew, dateDue); err != nil {
		return err
	}
	invoice.SequenceNumber = seq
	invoice.Status = domain.StatusNew
	invoice.DateDue = dateDue
	return nil
}

// ProFormaToReal converts a pro-forma invoice into a real one after
// confirming the stock reservation with the warehouse.
func (s *invoiceService) ProFormaToReal(ctx context.Context, seq string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return nil, err
	}
	if !invoice.IsProForma() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransition, ErrNotProForma)
	}

	if err := s.stock.ConfirmReservation(ctx, invoice.SequenceNumber); err != nil {
		return nil, fmt.Errorf("confirming reservation %s: %w", invoice.SequenceNumber, err)
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	locked, err := s.invoiceRepo.FindForUpdate(ctx, tx, invoice.ID)
	if err != nil {
		return nil, err
	}
	if err := s.reissueAsReal(ctx, tx, locked); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return locked, nil
}

// CancelProForma cancels a pro-forma invoice and releases its stock
// reservation. Real invoices cannot be canceled; the sequence number keeps
// its pro-forma form.
func (s *invoiceService) CancelProForma(ctx context.Context, seq string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return nil, err
	}
	if !invoice.IsProForma() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransition, ErrOnlyProForma)
	}

	if err := s.stock.CancelReservation(ctx, invoice.SequenceNumber); err != nil {
		return nil, fmt.Errorf("canceling reservation %s: %w", invoice.SequenceNumber, err)
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	locked, err := s.invoiceRepo.FindForUpdate(ctx, tx, invoice.ID)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, tx, locked.ID, domain.StatusCanceled); err != nil {
		return nil, err
	}
	locked.Status = domain.StatusCanceled

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return locked, nil
}

// ListPayments returns the payment ledger of an invoice, oldest first.
func (s *invoiceService) ListPayments(ctx context.Context, seq string) ([]dto.PaymentResponse, error) {
	invoice, err := s.invoiceRepo.FindBySequenceNumber(ctx, seq)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPayments(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		platform, err := s.platformRepo.FindByID(ctx, p.PlatformID)
		if err != nil {
			return nil, err
		}
		responses[i] = dto.PaymentResponse{
			PaymentID:   p.PaymentID,
			Platform:    platform.Name,
			Amount:      p.Amount,
			DateCreated: p.DateCreated,
		}
	}
	return responses, nil
}
