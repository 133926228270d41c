package workspace

import (
	"errors"
	"fmt"
)

// SecurityError reports a confinement or denylist violation. It always
// carries the offending path and the specific reason; no filesystem
// operation is attempted after one is raised.
type SecurityError struct {
	Path   string
	Reason string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("SecurityError: path %q rejected - %s", e.Path, e.Reason)
}

// IsSecurityError reports whether err is (or wraps) a SecurityError.
func IsSecurityError(err error) bool {
	var se *SecurityError
	return errors.As(err, &se)
}
