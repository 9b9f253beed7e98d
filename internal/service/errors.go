package service

import (
	"errors"
	"fmt"

	"shop-services/internal/store"
)

// Not-found sentinels raised by explicit existence checks. The API layer
// maps them to HTTP 404 with a message naming the entity kind.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
)

// RemoteError carries a remote service's failure through to the original
// caller without translation: the status code and message are whatever the
// remote call produced. There is no retry and no fallback.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote call failed: status=%d message=%s", e.StatusCode, e.Message)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
