package fire

import "errors"

var (
	ErrInvalidSize           = errors.New("invalid grid size")
	ErrInvalidIgnition       = errors.New("invalid ignition")
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrOutOfRangeProbability = errors.New("probability out of range")
	ErrMissingVegetation     = errors.New("vegetation field required")
)
