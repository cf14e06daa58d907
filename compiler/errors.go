package compiler

import "errors"

// ErrElementNotFound indicates that the selected element path does not
// exist in the model.
var ErrElementNotFound = errors.New("umlgql: element not found")
