// Package mt940 implements a minimal parser for the MT940 bank statement
// interchange format, covering the fields the reconciliation engine needs:
// the :61: statement line (value date, debit/credit mark, amount) and the
// :86: information-to-account-owner block that carries the free-text details
// a client typed when paying an invoice.
//
// Amounts are parsed as decimal strings, never through float64. Currency is
// assumed to be EUR.
package mt940

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warehousing/invoicing_backend/internal/apperrors"
)

// statementLineRe captures the :61: statement line:
// value date (YYMMDD), optional entry date (MMDD), reversal/debit/credit
// mark, optional funds code letter, and the comma-decimal amount.
var statementLineRe = regexp.MustCompile(`^(\d{6})(\d{4})?(R?[CD])([A-Z])?(\d+,\d*)`)

// referenceRe matches invoice sequence numbers inside transaction details:
// either a real invoice ("2022-001") or a pro-forma one ("PF-2022-001").
var referenceRe = regexp.MustCompile(`(PF-[0-9]{4}-[0-9]{3})|([0-9]{4}-[0-9]{3})`)

// Transaction is a single booked statement entry.
type Transaction struct {
	ValueDate time.Time
	// Amount is signed: credits are positive, debits negative.
	Amount  decimal.Decimal
	Details string
}

// Reference is one invoice reference found in a transaction's details,
// carrying that transaction's amount. A transaction mentioning several
// invoice numbers yields several references sharing the amount.
type Reference struct {
	Reference string
	Amount    decimal.Decimal
}

// Parse reads one raw MT940 document and returns its transactions in
// statement order.
func Parse(document string) ([]Transaction, error) {
	var (
		transactions []Transaction
		current      *Transaction
		inDetails    bool
	)

	flush := func() {
		if current != nil {
			current.Details = strings.TrimSpace(current.Details)
			transactions = append(transactions, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(document))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, ":61:"):
			flush()
			txn, err := parseStatementLine(strings.TrimPrefix(line, ":61:"))
			if err != nil {
				return nil, err
			}
			current = txn
			inDetails = false
		case strings.HasPrefix(line, ":86:"):
			if current != nil {
				current.Details = strings.TrimPrefix(line, ":86:")
				inDetails = true
			}
		case strings.HasPrefix(line, ":"):
			// Any other tag terminates the details block of the
			// preceding transaction.
			inDetails = false
		default:
			// Continuation line of a multi-line :86: block.
			if current != nil && inDetails {
				current.Details += "\n" + line
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	flush()
	return transactions, nil
}

func parseStatementLine(body string) (*Transaction, error) {
	m := statementLineRe.FindStringSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("%w: malformed :61: statement line %q", apperrors.ErrValidation, body)
	}

	valueDate, err := time.Parse("060102", m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad value date in %q", apperrors.ErrValidation, body)
	}

	amount, err := decimal.NewFromString(strings.Replace(m[5], ",", ".", 1))
	if err != nil {
		return nil, fmt.Errorf("%w: bad amount in %q", apperrors.ErrValidation, body)
	}
	// D and RC book money out of the account, C and RD book it in.
	if m[3] == "D" || m[3] == "RC" {
		amount = amount.Neg()
	}

	return &Transaction{ValueDate: valueDate, Amount: amount}, nil
}

// ExtractReferences parses the given raw documents and scans every
// transaction's details for invoice sequence numbers. Results keep input
// order across documents; a transaction without matches contributes nothing.
func ExtractReferences(documents []string) ([]Reference, error) {
	var refs []Reference
	for _, doc := range documents {
		transactions, err := Parse(doc)
		if err != nil {
			return nil, err
		}
		for _, txn := range transactions {
			for _, match := range referenceRe.FindAllString(txn.Details, -1) {
				refs = append(refs, Reference{Reference: match, Amount: txn.Amount})
			}
		}
	}
	return refs, nil
}
