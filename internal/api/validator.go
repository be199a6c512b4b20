package api

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"libraryapi/internal/httpx"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("isbn", validateISBN)
}

var (
	isbn10Re = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Re = regexp.MustCompile(`^\d{13}$`)
)

func validateISBN(fl validator.FieldLevel) bool {
	isbn := fl.Field().String()
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")

	if len(isbn) == 10 {
		return isbn10Re.MatchString(isbn)
	}
	if len(isbn) == 13 {
		return isbn13Re.MatchString(isbn)
	}
	return false
}

// validationDetails converts validator errors into response details.
func validationDetails(err error) []httpx.ErrorDetail {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []httpx.ErrorDetail{{Field: "", Message: err.Error()}}
	}
	details := make([]httpx.ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, httpx.ErrorDetail{
			Field:   strings.ToLower(fe.Field()),
			Message: messageForTag(fe),
		})
	}
	return details
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "isbn":
		return "must be a valid ISBN-10 or ISBN-13"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
