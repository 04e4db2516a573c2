package registry

import "fmt"

// DuplicateIdentifierError is returned when creating a charge code whose
// identifier already exists in the registry.
type DuplicateIdentifierError struct {
	Identifier string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("charge code %q already exists", e.Identifier)
}

// NotFoundError is returned for operations on an identifier the registry
// does not contain.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("charge code %q not found", e.Identifier)
}
