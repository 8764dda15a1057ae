package httperr

import (
	"errors"
	"fmt"
)

// Kind classifica uma falha para quem chama. Todo erro que sai de um use case
// é um BusinessError de um destes tipos ou um StorageError.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindSlotConflict
	KindInvalidTransition
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindSlotConflict:
		return "slot_conflict"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return ErrBusiness(KindValidation, code, message)
}

func SlotConflict(message string) error {
	return ErrBusiness(KindSlotConflict, "slot_conflict", message)
}

func InvalidTransition(code, message string) error {
	return ErrBusiness(KindInvalidTransition, code, message)
}

func NotFoundErr(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// StorageError é qualquer falha de persistência que não seja uma condição
// de domínio reconhecida.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// KindOf retorna o tipo de err. Erros não classificados contam como falha
// de storage.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindStorage
}
