package adminclient

import "strings"

// Consolidated validation messages, one per form. Validation failures are
// reported as a single message, never itemized per field.
const (
	msgServiceFieldsRequired = "Name, Price, and Description are required."
	msgBookingFieldsRequired = "Please fill in all required fields: Your Name, Email, Pet Name(s), Service, and Preferred Date/Time."
	msgEnquiryFieldsRequired = "Please fill in Your Name, Your Email, and Your Message."
)

// Validate rejects the fields client-side before any network call.
func (f ServiceFields) Validate() error {
	if blank(f.Name) || blank(f.PriceString) || blank(f.Description) {
		return validationError(msgServiceFieldsRequired)
	}
	return nil
}

// BookingForm is a booking request submission for a specific service.
type BookingForm struct {
	ServiceName       string `json:"serviceName"`
	CustomerName      string `json:"customerName"`
	CustomerEmail     string `json:"customerEmail"`
	CustomerPhone     string `json:"customerPhone"`
	PetName           string `json:"petName"`
	PetType           string `json:"petType"`
	PreferredDateTime string `json:"preferredDateTime"`
	Notes             string `json:"notes"`
	ReferralSource    string `json:"referralSource"`
}

func (f BookingForm) Validate() error {
	if blank(f.CustomerName) || blank(f.CustomerEmail) || blank(f.PetName) ||
		blank(f.ServiceName) || blank(f.PreferredDateTime) {
		return validationError(msgBookingFieldsRequired)
	}
	return nil
}

// EnquiryForm is a free-form contact submission.
type EnquiryForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (f EnquiryForm) Validate() error {
	if blank(f.Name) || blank(f.Email) || blank(f.Message) {
		return validationError(msgEnquiryFieldsRequired)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
