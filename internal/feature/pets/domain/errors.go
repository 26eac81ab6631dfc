// Package domain defines domain-level errors for the pets feature.
package domain

import "errors"

var (
	// ErrPetNotFound indicates that the pet does not exist or belongs to another owner.
	ErrPetNotFound = errors.New("pet not found")

	// ErrInvalidPet indicates that pet attributes failed validation.
	ErrInvalidPet = errors.New("invalid pet")

	// ErrOwnerNotFound indicates that the owning account no longer exists.
	ErrOwnerNotFound = errors.New("owner not found")
)
