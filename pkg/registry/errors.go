package registry

import "fmt"

// DuplicateNameError is returned by Register in strict mode when the
// name is already taken.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("registry: logger %q already registered", e.Name)
}

// NotFoundError is returned by Lookup for unknown names.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: logger %q not found", e.Name)
}
