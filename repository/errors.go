package repository

import (
	"awards-backend/dal"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ErrNominationNotFound is returned when no nomination has the requested ID
var ErrNominationNotFound = errors.New("nomination not found")

// StorageErrorKind classifies a failed storage call
type StorageErrorKind int

const (
	// KindStorageFailure covers failures reaching the store at all
	// (network, timeouts, cancelled contexts).
	KindStorageFailure StorageErrorKind = iota + 1
	// KindProviderFailure is an error returned by DynamoDB itself and
	// carries the provider error code.
	KindProviderFailure
)

func (k StorageErrorKind) String() string {
	switch k {
	case KindStorageFailure:
		return "storage_failure"
	case KindProviderFailure:
		return "provider_failure"
	default:
		return "unknown"
	}
}

// StorageError is a classified failure from the document store
type StorageError struct {
	Kind StorageErrorKind
	Op   string
	Code string // provider error code, KindProviderFailure only
	Err  error
}

func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// classifyError tags err with a storage kind. Encoding failures are
// returned unchanged since they are not storage outages.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, dal.ErrItemEncoding) {
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &StorageError{
			Kind: KindProviderFailure,
			Op:   op,
			Code: apiErr.ErrorCode(),
			Err:  err,
		}
	}

	return &StorageError{
		Kind: KindStorageFailure,
		Op:   op,
		Err:  err,
	}
}
