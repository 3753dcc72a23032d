package model

import "errors"

var ErrIntentional = errors.New("intentional error for testing")
