// Package entity defines the domain entities for the pets feature.
package entity

import "time"

// Gender is the sex of a pet.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Pet is an animal registered by a user.
type Pet struct {
	ID     uint
	UserID uint

	Name  string
	Breed string
	// Birth is the date of birth at midnight UTC.
	Birth  time.Time
	Gender Gender
	// Chip is the microchip number, if any.
	Chip     *string
	Illness  bool
	Neutered bool
	// Weight in kilograms, if known.
	Weight *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PetUpdate lists the fields an owner may change after registration.
type PetUpdate struct {
	Weight   *float64
	Neutered *bool
}

// IsEmpty reports whether the update would change nothing.
func (u PetUpdate) IsEmpty() bool {
	return u.Weight == nil && u.Neutered == nil
}
