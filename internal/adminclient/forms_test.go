package adminclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceFieldsValidate(t *testing.T) {
	valid := ServiceFields{Name: "Dog Walking", PriceString: "$30/hour", Description: "walkies"}
	assert.NoError(t, valid.Validate())

	cases := []ServiceFields{
		{PriceString: "$30", Description: "d"},
		{Name: "X", Description: "d"},
		{Name: "X", PriceString: "$30"},
		{Name: "   ", PriceString: "\t", Description: "  "},
	}
	for _, fields := range cases {
		err := fields.Validate()
		assert.Error(t, err)
		assert.Equal(t, "Name, Price, and Description are required.", err.Error())
	}
}

func TestBookingFormValidate(t *testing.T) {
	valid := BookingForm{
		ServiceName:       "Dog Walking",
		CustomerName:      "Jamie",
		CustomerEmail:     "jamie@example.com",
		PetName:           "Rex",
		PreferredDateTime: "Next Tuesday afternoon",
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.PetName = " "
	err := missing.Validate()
	assert.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestEnquiryFormValidate(t *testing.T) {
	valid := EnquiryForm{Name: "Sam", Email: "sam@example.com", Message: "Do you board rabbits?"}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Message = ""
	assert.Error(t, missing.Validate())
}
