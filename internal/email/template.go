// Package email builds invoice email subjects and bodies. It only produces
// text; actually sending mail is left to whatever the host wires up.
package email

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
)

// Business identifies the sender on outgoing invoice emails.
type Business struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Website string
	TaxID   string
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateAddress checks an email address for plausible shape.
func ValidateAddress(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("email address is required")
	}
	if !emailRe.MatchString(addr) {
		return fmt.Errorf("invalid email address: %q", addr)
	}
	return nil
}

const divider = "---------------------------------------------------"

// InvoiceSubject builds the subject line for an invoice email.
func InvoiceSubject(invoiceNumber string, biz Business) string {
	return fmt.Sprintf("Invoice %s from %s", invoiceNumber, biz.Name)
}

// InvoiceBody builds the plain-text body for an invoice email: header,
// itemized lines, totals block, and payment instructions.
func InvoiceBody(inv domain.Invoice, client domain.Client, biz Business) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", client.Name)
	fmt.Fprintf(&b, "Please find the details for invoice %s below.\n\n", inv.InvoiceNumber)

	b.WriteString("INVOICE DETAILS:\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Invoice Number: %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Date: %s\n", dates.Format(inv.Date, dates.StyleLong))
	fmt.Fprintf(&b, "Due Date: %s\n\n", dates.Format(inv.DueDate, dates.StyleLong))

	b.WriteString("Bill To:\n")
	b.WriteString(client.Name + "\n")
	if client.Company != "" {
		b.WriteString(client.Company + "\n")
	}
	b.WriteString(client.Email + "\n\n")

	b.WriteString("ITEMS:\n")
	b.WriteString(divider + "\n")
	for _, it := range inv.Items {
		fmt.Fprintf(&b, "- %s - Qty: %g @ $%.2f = $%.2f\n", it.Description, it.Quantity, it.Rate, it.Amount)
	}
	b.WriteString("\n")

	b.WriteString("SUMMARY:\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Subtotal: $%.2f\n", inv.Subtotal)
	if inv.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -$%.2f\n", inv.Discount)
	}
	fmt.Fprintf(&b, "Tax: $%.2f\n", inv.Tax)
	fmt.Fprintf(&b, "TOTAL: $%.2f\n\n", inv.Total)

	if inv.Notes != "" {
		b.WriteString("NOTES:\n")
		b.WriteString(divider + "\n")
		b.WriteString(inv.Notes + "\n\n")
	}

	b.WriteString("PAYMENT INFORMATION:\n")
	b.WriteString(divider + "\n")
	b.WriteString(PaymentInstructions(biz) + "\n\n")

	b.WriteString("If you have any questions about this invoice, please don't hesitate to contact us.\n\n")
	b.WriteString("Thank you for your business!\n\n")
	b.WriteString("Best regards,\n")
	b.WriteString(signature(biz))

	return b.String()
}

// ReminderSubject builds the subject line for a payment reminder.
func ReminderSubject(invoiceNumber string, biz Business) string {
	return fmt.Sprintf("Payment Reminder: Invoice %s - %s", invoiceNumber, biz.Name)
}

// ReminderBody builds the plain-text body for an overdue payment reminder.
func ReminderBody(inv domain.Invoice, client domain.Client, biz Business, now time.Time) string {
	daysOverdue := dates.DaysBetween(inv.DueDate, now)
	if !dates.IsPastDue(inv.DueDate, now) {
		daysOverdue = 0
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", client.Name)
	fmt.Fprintf(&b, "This is a friendly reminder that invoice %s is now %d day(s) overdue.\n\n",
		inv.InvoiceNumber, daysOverdue)

	b.WriteString("INVOICE DETAILS:\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Invoice Number: %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Original Due Date: %s\n", dates.Format(inv.DueDate, dates.StyleLong))
	fmt.Fprintf(&b, "Amount Due: $%.2f\n", inv.Total)
	fmt.Fprintf(&b, "Days Overdue: %d\n\n", daysOverdue)

	b.WriteString("Please remit payment at your earliest convenience. ")
	b.WriteString("If you have already sent payment, please disregard this notice.\n\n")
	fmt.Fprintf(&b, "If you have any questions or concerns about this invoice, please contact us immediately at %s or %s.\n\n",
		biz.Email, biz.Phone)

	b.WriteString(PaymentInstructions(biz) + "\n\n")
	b.WriteString("Thank you for your prompt attention to this matter.\n\n")
	b.WriteString("Best regards,\n")
	b.WriteString(signature(biz))

	return b.String()
}

// ThankYouSubject builds the subject line for a payment confirmation.
func ThankYouSubject(invoiceNumber string, biz Business) string {
	return fmt.Sprintf("Payment Received - Invoice %s - %s", invoiceNumber, biz.Name)
}

// ThankYouBody builds the plain-text confirmation sent after a payment is
// received. amount is the payment just recorded, not the invoice total.
func ThankYouBody(inv domain.Invoice, client domain.Client, amount float64, biz Business, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", client.Name)
	fmt.Fprintf(&b, "Thank you for your payment! We have received your payment of $%.2f for invoice %s.\n\n",
		amount, inv.InvoiceNumber)

	b.WriteString("PAYMENT CONFIRMATION:\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Invoice Number: %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Payment Amount: $%.2f\n", amount)
	fmt.Fprintf(&b, "Invoice Total: $%.2f\n", inv.Total)
	fmt.Fprintf(&b, "Payment Date: %s\n", dates.Format(now, dates.StyleLong))
	if amount >= inv.Total {
		b.WriteString("Status: PAID IN FULL\n\n")
	} else {
		b.WriteString("Status: PARTIAL PAYMENT\n\n")
		fmt.Fprintf(&b, "Outstanding Balance: $%.2f\n\n", inv.Total-amount)
	}

	b.WriteString("We appreciate your business and look forward to working with you again.\n\n")
	fmt.Fprintf(&b, "If you have any questions about this payment or need a receipt, please contact us at %s.\n\n",
		biz.Email)
	b.WriteString("Best regards,\n")
	b.WriteString(signature(biz))

	return b.String()
}

// NormalizeAddressList trims and lowercases addresses, dropping any that
// fail validation.
func NormalizeAddressList(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if ValidateAddress(a) == nil {
			out = append(out, a)
		}
	}
	return out
}

// PaymentInstructions builds the standard remittance options block.
func PaymentInstructions(biz Business) string {
	site := biz.Website
	if site == "" {
		site = "our website"
	}
	contact := biz.Email
	if contact == "" {
		contact = biz.Phone
	}

	var b strings.Builder
	b.WriteString("Please remit payment by the due date above. Payment can be made via:\n\n")
	b.WriteString("- Bank Transfer: Contact us for banking details\n")
	fmt.Fprintf(&b, "- Check: Make payable to %q\n", biz.Name)
	fmt.Fprintf(&b, "- Online Payment: Visit %s for online payment options\n", site)
	b.WriteString("- Credit Card: Contact us to process payment by phone\n\n")
	fmt.Fprintf(&b, "For any payment questions, please contact us at %s.", contact)
	return b.String()
}

// MailtoURL builds a mailto link carrying the subject and body, for hosts
// that hand delivery off to the system mail client.
func MailtoURL(to, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		to, url.QueryEscape(subject), url.QueryEscape(body))
}

func signature(biz Business) string {
	var b strings.Builder
	b.WriteString(biz.Name + "\n")
	if biz.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", biz.Phone)
	}
	if biz.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", biz.Email)
	}
	if biz.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", biz.Website)
	}
	if biz.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", biz.Address)
	}
	return b.String()
}
