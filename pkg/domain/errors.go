package domain

import "errors"

// BusinessError marks a domain rule violation that the HTTP layer reports as
// a 400 with the rule's message.
type BusinessError struct {
	msg string
}

func NewBusinessError(msg string) *BusinessError {
	return &BusinessError{msg: msg}
}

func (e *BusinessError) Error() string {
	return e.msg
}

// IsBusinessError reports whether err is a business rule violation.
func IsBusinessError(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

var (
	// ErrDuplicateISBN rejects creating a second book with an isbn already
	// in use. Message text is part of the API contract.
	ErrDuplicateISBN = NewBusinessError("Isbn já cadastrado")

	// ErrBookLoaned rejects loaning a book that has an open loan.
	ErrBookLoaned = NewBusinessError("Book already loaned")

	// ErrMissingID rejects update/delete calls for records that were never
	// persisted.
	ErrMissingID = errors.New("book id cant be null")
)
