package rave

import "errors"

// ErrInvalidQuery is returned when a table is queried or updated with the
// undefined feature set.
var ErrInvalidQuery = errors.New("rave: undefined feature set")
