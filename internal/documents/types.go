package documents

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/vouchers"
)

// Account codes the standard documents post against. They follow the
// seeded chart; tenants that renumber their chart keep these codes as
// aliases on the relevant accounts.
const (
	codeBank        = "1110"
	codeReceivables = "1305"
	codeSuppliers   = "2205"
	codeVAT         = "2408"
	codeSales       = "4135"
	codePurchases   = "1435"
)

// SalesInvoice bills a customer: receivable for the gross, revenue for the
// net, IVA payable for the tax.
type SalesInvoice struct {
	header
}

func NewSalesInvoice(number, customer string, issuedAt time.Time, net decimal.Decimal) SalesInvoice {
	return SalesInvoice{header{Number: number, Party: customer, IssuedAt: issuedAt, Amount: net}}
}

func (d SalesInvoice) Validate() error { return d.header.validate() }

func (d SalesInvoice) Totals() Totals { return taxedTotals(d.Amount) }

func (d SalesInvoice) Entries() []Entry {
	t := d.Totals()
	return []Entry{
		{AccountCode: codeReceivables, Debit: t.Gross},
		{AccountCode: codeSales, Credit: t.Net},
		{AccountCode: codeVAT, Credit: t.Tax},
	}
}

func (d SalesInvoice) Description() string {
	return "Factura de venta " + d.Number + " - " + d.Party
}

func (d SalesInvoice) VoucherType() vouchers.VoucherType { return vouchers.VoucherTypeIncome }

// CreditNote reverses a sales invoice in full or in part.
type CreditNote struct {
	header
	// InvoiceNumber references the invoice being credited.
	InvoiceNumber string `json:"invoice_number"`
}

func NewCreditNote(number, invoiceNumber, customer string, issuedAt time.Time, net decimal.Decimal) CreditNote {
	return CreditNote{
		header:        header{Number: number, Party: customer, IssuedAt: issuedAt, Amount: net},
		InvoiceNumber: invoiceNumber,
	}
}

func (d CreditNote) Validate() error {
	if d.InvoiceNumber == "" {
		return ErrMissingNumber
	}
	return d.header.validate()
}

func (d CreditNote) Totals() Totals { return taxedTotals(d.Amount) }

func (d CreditNote) Entries() []Entry {
	t := d.Totals()
	return []Entry{
		{AccountCode: codeSales, Debit: t.Net},
		{AccountCode: codeVAT, Debit: t.Tax},
		{AccountCode: codeReceivables, Credit: t.Gross},
	}
}

func (d CreditNote) Description() string {
	return "Nota crédito " + d.Number + " sobre factura " + d.InvoiceNumber + " - " + d.Party
}

func (d CreditNote) VoucherType() vouchers.VoucherType { return vouchers.VoucherTypeAdjustment }

// PurchaseInvoice records a supplier bill: purchases for the net,
// deductible IVA for the tax, payable for the gross.
type PurchaseInvoice struct {
	header
}

func NewPurchaseInvoice(number, supplier string, issuedAt time.Time, net decimal.Decimal) PurchaseInvoice {
	return PurchaseInvoice{header{Number: number, Party: supplier, IssuedAt: issuedAt, Amount: net}}
}

func (d PurchaseInvoice) Validate() error { return d.header.validate() }

func (d PurchaseInvoice) Totals() Totals { return taxedTotals(d.Amount) }

func (d PurchaseInvoice) Entries() []Entry {
	t := d.Totals()
	return []Entry{
		{AccountCode: codePurchases, Debit: t.Net},
		{AccountCode: codeVAT, Debit: t.Tax},
		{AccountCode: codeSuppliers, Credit: t.Gross},
	}
}

func (d PurchaseInvoice) Description() string {
	return "Factura de compra " + d.Number + " - " + d.Party
}

func (d PurchaseInvoice) VoucherType() vouchers.VoucherType { return vouchers.VoucherTypeExpense }

// CashReceipt settles a customer receivable. No IVA: the tax was already
// recognised on the invoice.
type CashReceipt struct {
	header
}

func NewCashReceipt(number, customer string, issuedAt time.Time, amount decimal.Decimal) CashReceipt {
	return CashReceipt{header{Number: number, Party: customer, IssuedAt: issuedAt, Amount: amount}}
}

func (d CashReceipt) Validate() error { return d.header.validate() }

func (d CashReceipt) Totals() Totals { return untaxedTotals(d.Amount) }

func (d CashReceipt) Entries() []Entry {
	t := d.Totals()
	return []Entry{
		{AccountCode: codeBank, Debit: t.Gross},
		{AccountCode: codeReceivables, Credit: t.Gross},
	}
}

func (d CashReceipt) Description() string {
	return "Recibo de caja " + d.Number + " - " + d.Party
}

func (d CashReceipt) VoucherType() vouchers.VoucherType { return vouchers.VoucherTypeIncome }
