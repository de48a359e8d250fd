package payscale

import (
	"errors"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
)

var ErrPayScaleNotFound = errors.New("pay scale not found")

type (
	ValidationError  = validator.ValidationError
	ValidationErrors = validator.ValidationErrors
)
