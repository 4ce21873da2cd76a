package handler

import "github.com/contactdesk/contact-management-api/internal/core/ports"

// contactRequest is the payload for contact create and update. The
// validate tags carry the record's invariants; address is optional.
type contactRequest struct {
	FirstName   string `json:"firstName"   validate:"required,alpha"`
	LastName    string `json:"lastName"    validate:"required,alpha"`
	Email       string `json:"email"       validate:"required,contact_email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,intl_phone"`
	Address     string `json:"address"     validate:"omitempty,address_chars"`
}

func toContactInput(r contactRequest) ports.ContactInput {
	return ports.ContactInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}
}
