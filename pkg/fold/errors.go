package fold

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable is matched by every ServiceUnavailableError.
var ErrServiceUnavailable = errors.New("service unavailable")

// ErrTransitionRefused is recorded when the host declines a collapse.
var ErrTransitionRefused = errors.New("host refused transition")

// Service names reported in ServiceUnavailableError.
const (
	ServiceTextManager = "text-manager"
	ServiceOutlining   = "outlining"
)

// ServiceUnavailableError reports a host service that could not be obtained.
type ServiceUnavailableError struct {
	Service string
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s service is not available", e.Service)
}

// Is makes errors.Is(err, ErrServiceUnavailable) true.
func (e *ServiceUnavailableError) Is(target error) bool {
	return target == ErrServiceUnavailable
}
