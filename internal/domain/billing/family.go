package billing

// DocumentFamily identifies which kind of financial document an aggregate
// belongs to. All families share the same table shape and numbering scheme;
// behavior differences (settlement, counterparty side) hang off the family.
type DocumentFamily string

const (
	FamilyInvoice       DocumentFamily = "invoice"
	FamilyVendorBill    DocumentFamily = "vendor_bill"
	FamilySaleOrder     DocumentFamily = "sale_order"
	FamilyPurchaseOrder DocumentFamily = "purchase_order"
)

// IsValid checks if the family is a known document family
func (f DocumentFamily) IsValid() bool {
	switch f {
	case FamilyInvoice, FamilyVendorBill, FamilySaleOrder, FamilyPurchaseOrder:
		return true
	}
	return false
}

// String returns the string representation of the family
func (f DocumentFamily) String() string {
	return string(f)
}

// NumberPrefix returns the document number prefix for the family,
// e.g. "INV" produces numbers like INV-000001
func (f DocumentFamily) NumberPrefix() string {
	switch f {
	case FamilyInvoice:
		return "INV"
	case FamilyVendorBill:
		return "BILL"
	case FamilySaleOrder:
		return "SO"
	case FamilyPurchaseOrder:
		return "PO"
	}
	return ""
}

// Settleable returns true if payments can be applied against documents
// of this family. Orders track fulfilment, not money, so they are not
// settleable.
func (f DocumentFamily) Settleable() bool {
	return f == FamilyInvoice || f == FamilyVendorBill
}

// PartnerRole identifies which side of the business a document's
// counterparty sits on
type PartnerRole string

const (
	PartnerRoleCustomer PartnerRole = "customer"
	PartnerRoleVendor   PartnerRole = "vendor"
)

// PartnerRole returns the counterparty side documents of this family require
func (f DocumentFamily) PartnerRole() PartnerRole {
	switch f {
	case FamilyInvoice, FamilySaleOrder:
		return PartnerRoleCustomer
	default:
		return PartnerRoleVendor
	}
}

// PaymentFamily identifies which kind of payment an aggregate belongs to.
// Customer payments settle invoices; bill payments settle vendor bills.
// Both families use the PAY prefix but draw from independent sequences.
type PaymentFamily string

const (
	PaymentFamilyCustomer PaymentFamily = "payment"
	PaymentFamilyVendor   PaymentFamily = "bill_payment"
)

// IsValid checks if the payment family is known
func (f PaymentFamily) IsValid() bool {
	return f == PaymentFamilyCustomer || f == PaymentFamilyVendor
}

// String returns the string representation of the payment family
func (f PaymentFamily) String() string {
	return string(f)
}

// NumberPrefix returns the payment number prefix
func (f PaymentFamily) NumberPrefix() string {
	return "PAY"
}

// DocumentFamily returns the document family this payment family settles
func (f PaymentFamily) DocumentFamily() DocumentFamily {
	if f == PaymentFamilyCustomer {
		return FamilyInvoice
	}
	return FamilyVendorBill
}
