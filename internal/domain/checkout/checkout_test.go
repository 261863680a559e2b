package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepOf(t *testing.T) {
	assert.Equal(t, StepDelivery, StepOf(FieldPayment))
	assert.Equal(t, StepDelivery, StepOf(FieldAddress))
	assert.Equal(t, StepContacts, StepOf(FieldEmail))
	assert.Equal(t, StepContacts, StepOf(FieldPhone))
}

func TestDefaultForm(t *testing.T) {
	form := DefaultForm()

	assert.Equal(t, PaymentCard, form.Payment)
	assert.Empty(t, form.Address)
	assert.Empty(t, form.Email)
	assert.Empty(t, form.Phone)
}

func TestFormSet(t *testing.T) {
	var form Form
	form.Set(FieldPayment, "cash")
	form.Set(FieldAddress, "Main St 1")
	form.Set(FieldEmail, "a@b.co")
	form.Set(FieldPhone, "+1234567")

	assert.Equal(t, Form{
		Payment: PaymentCash,
		Address: "Main St 1",
		Email:   "a@b.co",
		Phone:   "+1234567",
	}, form)
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x@sub.domain.org"}
	for _, s := range valid {
		assert.True(t, ValidEmail(s), s)
	}

	invalid := []string{"", "bad", "a@b", "a b@c.de", "a@@b.co", "@b.co", "a@.x", "a@x."}
	for _, s := range invalid {
		assert.False(t, ValidEmail(s), s)
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"1234567", "+1234567", "+123456789012345", "79991234567"}
	for _, s := range valid {
		assert.True(t, ValidPhone(s), s)
	}

	invalid := []string{"", "123456", "+123456", "1234567890123456", "12-34-56-78", "+7 999 1234567", "phone"}
	for _, s := range invalid {
		assert.False(t, ValidPhone(s), s)
	}
}

func TestValidAddress(t *testing.T) {
	assert.False(t, ValidAddress(""))
	assert.True(t, ValidAddress("Main St 1"))
}
