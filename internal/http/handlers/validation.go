package handlers

import (
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateLookup(req LookupRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(req.Gender) == "" {
		errs = append(errs, ValidationError{Field: "gender", Description: "gender is required"})
	}
	if strings.TrimSpace(req.Age) == "" {
		errs = append(errs, ValidationError{Field: "age", Description: "age is required"})
	}
	return errs
}
