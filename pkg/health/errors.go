package health

import "errors"

// ErrCheckTimeout is reported for checks that outlive the probe timeout.
var ErrCheckTimeout = errors.New("health: check timeout")
