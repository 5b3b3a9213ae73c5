package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
)

// Validation error codes.
const (
	CodeRequiredField   = "REQUIRED_FIELD"
	CodeInvalidClient   = "INVALID_CLIENT"
	CodeDuplicateNumber = "DUPLICATE_INVOICE_NUMBER"
	CodeInvalidRange    = "INVALID_DATE_RANGE"
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeInvalidRate     = "INVALID_RATE"
	CodeInvalidTotal    = "INVALID_TOTAL"
)

// Warning thresholds.
const (
	warnPaymentTermDays = 90
	warnItemQuantity    = 1000
	warnItemRate        = 10000
	warnInvoiceTotal    = 100000
)

// ValidationError describes a single blocking problem on a candidate invoice.
type ValidationError struct {
	Field   string
	Message string
	Code    string
}

// ValidationResult is the outcome of Validate. Errors block saving;
// warnings are advisory only.
type ValidationResult struct {
	IsValid  bool
	Errors   []ValidationError
	Warnings []string
}

// ErrorFor returns the first error recorded against a field, or nil.
func (r ValidationResult) ErrorFor(field string) *ValidationError {
	for i := range r.Errors {
		if r.Errors[i].Field == field {
			return &r.Errors[i]
		}
	}
	return nil
}

// Validate checks a candidate invoice for submission-readiness against the
// known clients and the existing invoice collection. It is a pure read:
// the candidate is never modified, and duplicate-number detection skips the
// candidate's own ID so an unchanged number does not collide with itself
// on update.
func Validate(candidate domain.Invoice, clients []domain.Client, existing []domain.Invoice, now time.Time) ValidationResult {
	var errs []ValidationError
	var warnings []string

	if candidate.ClientID <= 0 {
		errs = append(errs, ValidationError{
			Field: "clientId", Message: "Client is required", Code: CodeRequiredField,
		})
	} else {
		found := false
		for _, c := range clients {
			if c.ID == candidate.ClientID {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, ValidationError{
				Field: "clientId", Message: "Selected client does not exist", Code: CodeInvalidClient,
			})
		}
	}

	if strings.TrimSpace(candidate.InvoiceNumber) == "" {
		errs = append(errs, ValidationError{
			Field: "invoiceNumber", Message: "Invoice number is required", Code: CodeRequiredField,
		})
	} else {
		for _, inv := range existing {
			if inv.InvoiceNumber == candidate.InvoiceNumber && inv.ID != candidate.ID {
				errs = append(errs, ValidationError{
					Field: "invoiceNumber", Message: "Invoice number already exists", Code: CodeDuplicateNumber,
				})
				break
			}
		}
	}

	if candidate.Date.IsZero() {
		errs = append(errs, ValidationError{
			Field: "date", Message: "Invoice date is required", Code: CodeRequiredField,
		})
	}

	if candidate.DueDate.IsZero() {
		errs = append(errs, ValidationError{
			Field: "dueDate", Message: "Due date is required", Code: CodeRequiredField,
		})
	}

	if !candidate.Date.IsZero() && !candidate.DueDate.IsZero() {
		if dates.Before(candidate.DueDate, candidate.Date) {
			errs = append(errs, ValidationError{
				Field: "dueDate", Message: "Due date cannot be before invoice date", Code: CodeInvalidRange,
			})
		}

		if dates.DaysBetween(candidate.Date, candidate.DueDate) > warnPaymentTermDays {
			warnings = append(warnings, "Payment terms exceed 90 days, which may affect cash flow")
		}

		if dates.IsPastDue(candidate.DueDate, now) {
			warnings = append(warnings, "Due date is in the past")
		}
	}

	if len(candidate.Items) == 0 {
		errs = append(errs, ValidationError{
			Field: "items", Message: "At least one invoice item is required", Code: CodeRequiredField,
		})
	}

	for i, item := range candidate.Items {
		n := i + 1

		if strings.TrimSpace(item.Description) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items.%d.description", i),
				Message: fmt.Sprintf("Item %d: Description is required", n),
				Code:    CodeRequiredField,
			})
		}

		if item.Quantity <= 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items.%d.quantity", i),
				Message: fmt.Sprintf("Item %d: Quantity must be greater than 0", n),
				Code:    CodeInvalidQuantity,
			})
		}

		if item.Rate < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items.%d.rate", i),
				Message: fmt.Sprintf("Item %d: Rate cannot be negative", n),
				Code:    CodeInvalidRate,
			})
		}

		if item.Quantity > warnItemQuantity {
			warnings = append(warnings, fmt.Sprintf("Item %d: Unusually high quantity (%g)", n, item.Quantity))
		}
		if item.Rate > warnItemRate {
			warnings = append(warnings, fmt.Sprintf("Item %d: Unusually high rate ($%g)", n, item.Rate))
		}
	}

	if candidate.Total < 0 {
		errs = append(errs, ValidationError{
			Field: "total", Message: "Total amount cannot be negative", Code: CodeInvalidTotal,
		})
	}
	if candidate.Total > warnInvoiceTotal {
		warnings = append(warnings, "Invoice total exceeds $100,000")
	}

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
