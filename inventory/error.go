package inventory

import "fmt"

//ErrorType are Error types
type ErrorType int

//ErrorTypes
const (
	ErrorTypeUser ErrorType = iota
	ErrorTypeServer
)

//Error wraps errors in the inventory package
type Error struct {
	Description string
	Type        ErrorType
	Err         error
}

func (e *Error) Error() string {
	if e.Type == ErrorTypeUser {
		return fmt.Sprintf("User Error: %s: %v", e.Description, e.Err)
	}
	return fmt.Sprintf("Server Error: %s: %v", e.Description, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

//NotFoundError signals that no catalog record matched the requested name
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("material %q not found in inventory", e.Name)
}

//InsufficientStockError signals that fewer units are available than requested.
//Available carries the current stock count for building a fallback message
type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}
