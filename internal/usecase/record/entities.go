package record

import "errors"

var ErrInvalidStatus = errors.New("invalid status")
