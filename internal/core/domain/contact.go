package domain

import "errors"

var ErrContactNotFound = errors.New("contact not found")
var ErrMergeInProgress = errors.New("merge already in progress")

// Contact is the core record managed by the API. The same shape backs both
// the plain contact collection and the duplicate-prone collection that the
// merge engine operates on.
//
// Fields use the empty string as the absent value: a contact ingested with
// no address simply carries "". The merge engine relies on this — empty
// email/phone values never act as dedup keys, and an empty field never
// overwrites a populated one on the canonical record.
type Contact struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	FirstName   string `json:"firstName" bson:"first_name"`
	LastName    string `json:"lastName" bson:"last_name"`
	Email       string `json:"email" bson:"email"`
	PhoneNumber string `json:"phoneNumber" bson:"phone_number"`
	Address     string `json:"address,omitempty" bson:"address,omitempty"`
}
