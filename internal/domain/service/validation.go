package service

import (
	"errors"
	"math"
	"strings"

	"github.com/diillson/cnc-quote-go/internal/shared/types"
)

// ValidateQuoteInput checks the estimator inputs. The estimator itself accepts anything;
// callers that want strict quotes call this first.
func ValidateQuoteInput(totalLengthMM float64, material string, thicknessMM float64) error {
	var errs []error

	if strings.TrimSpace(material) == "" {
		errs = append(errs, &types.ValidationError{Field: "material", Value: material, Reason: "must not be empty"})
	}
	if math.IsNaN(totalLengthMM) || math.IsInf(totalLengthMM, 0) {
		errs = append(errs, &types.ValidationError{Field: "total length", Value: totalLengthMM, Reason: "must be a finite number"})
	} else if totalLengthMM < 0 {
		errs = append(errs, &types.ValidationError{Field: "total length", Value: totalLengthMM, Reason: "must not be negative"})
	}
	if math.IsNaN(thicknessMM) || math.IsInf(thicknessMM, 0) {
		errs = append(errs, &types.ValidationError{Field: "thickness", Value: thicknessMM, Reason: "must be a finite number"})
	} else if thicknessMM <= 0 {
		errs = append(errs, &types.ValidationError{Field: "thickness", Value: thicknessMM, Reason: "must be greater than zero"})
	}

	return errors.Join(errs...)
}
