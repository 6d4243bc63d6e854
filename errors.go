package nfa

import "errors"

// ErrInvalidArgument is returned when a constructor is given an argument
// that cannot be treated as a finite collection of transitions.
var ErrInvalidArgument = errors.New("nfa: invalid argument")

// ErrInvalidValue is returned when a transition's successors are neither a
// single state nor a non-empty list of states.
var ErrInvalidValue = errors.New("nfa: invalid value")

// ErrInvalidInput is returned by Match when the input sequence cannot be
// matched against, such as a nil input slice where one is required.
var ErrInvalidInput = errors.New("nfa: invalid input")
