package ticket

import "github.com/procureflow/procureflow/internal/shared/errors"

var ErrVersionConflict = errors.NewConflictError("ticket was modified concurrently, please reload and retry")
