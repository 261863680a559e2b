// Package checkout models the two-step order form: its fields, the step
// each field belongs to, and the validation rules applied per step.
package checkout

import "regexp"

// PaymentMethod enumerates the supported payment options.
type PaymentMethod string

const (
	// PaymentCard covers card and other online payments. It is the form default.
	PaymentCard PaymentMethod = "card"
	// PaymentCash is payment on delivery.
	PaymentCash PaymentMethod = "cash"
)

// Field identifies a single order form field. The set is closed: form inputs
// route their changes through these identifiers instead of dynamic event
// name matching.
type Field string

const (
	// FieldNone marks a full-step check with no particular changed field.
	FieldNone Field = ""

	FieldPayment Field = "payment"
	FieldAddress Field = "address"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
)

// Step is one of the two sequential checkout phases. Each step is validated
// independently and both must be valid before an order can be submitted.
type Step string

const (
	// StepDelivery gathers the payment method and shipping address.
	StepDelivery Step = "delivery"
	// StepContacts gathers the customer's email and phone.
	StepContacts Step = "contacts"
)

// fieldSteps is the dispatch table mapping every form field to the step that
// owns it.
var fieldSteps = map[Field]Step{
	FieldPayment: StepDelivery,
	FieldAddress: StepDelivery,
	FieldEmail:   StepContacts,
	FieldPhone:   StepContacts,
}

// StepOf returns the step owning the given field. Unknown fields (including
// FieldNone) default to the contacts step, mirroring how field changes were
// routed before the dispatch table existed.
func StepOf(f Field) Step {
	if s, ok := fieldSteps[f]; ok {
		return s
	}
	return StepContacts
}

// Form holds the order form data, mutable field by field during checkout.
type Form struct {
	Payment PaymentMethod
	Email   string
	Phone   string
	Address string
}

// DefaultForm returns the form state at the start of a checkout: card
// payment and empty text fields.
func DefaultForm() Form {
	return Form{Payment: PaymentCard}
}

// Set writes value into the form field identified by f. Values are stored
// as given; validation happens separately.
func (fm *Form) Set(f Field, value string) {
	switch f {
	case FieldPayment:
		fm.Payment = PaymentMethod(value)
	case FieldAddress:
		fm.Address = value
	case FieldEmail:
		fm.Email = value
	case FieldPhone:
		fm.Phone = value
	}
}

// FieldErrors maps form fields to human-readable validation messages.
// Only fields currently known to be invalid are present; depending on which
// field triggered validation the map may be partial for its step.
type FieldErrors map[Field]string

// Validation messages, externalized so views and tests share one source.
const (
	MsgAddressRequired = "address is required"
	MsgEmailRequired   = "email is required"
	MsgEmailInvalid    = "invalid email format"
	MsgPhoneRequired   = "phone is required"
	MsgPhoneInvalid    = "invalid phone format"
)

var (
	// emailPattern accepts local@domain.tld shapes: no whitespace, no second
	// @, at least one dot after the @.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// phonePattern accepts an optional leading + followed by 7 to 15 digits.
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
)

// ValidAddress reports whether the address satisfies the delivery step rule.
func ValidAddress(address string) bool {
	return address != ""
}

// ValidEmail reports whether the email matches the required pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether the phone matches the required pattern.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
