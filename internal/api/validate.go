package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report wire names ("ipAddress") rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate checks a request struct and returns an *RemoteError of kind
// ErrorKindInvalidRequest describing every failing field.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RemoteError{Kind: ErrorKindInvalidRequest, Message: err.Error(), Err: err}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return &RemoteError{
		Kind:    ErrorKindInvalidRequest,
		Message: strings.Join(msgs, "; "),
		Err:     err,
	}
}

func describeFieldError(fe validator.FieldError) string {
	switch tag := fe.Tag(); {
	case tag == "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case strings.Contains(tag, "hostname"):
		return fmt.Sprintf("%s must be an IP address or hostname", fe.Field())
	case tag == "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return &RemoteError{Kind: ErrorKindInvalidRequest, Message: kind + " id is required"}
	}
	return nil
}

// ParseAppAction checks that s names an application action.
func ParseAppAction(s string) (AppActionType, error) {
	a := AppActionType(strings.ToLower(strings.TrimSpace(s)))
	if err := Validate(appActionRequest{Action: a}); err != nil {
		return "", err
	}
	return a, nil
}

// ParseHostAction checks that s names a host power action.
func ParseHostAction(s string) (HostActionType, error) {
	a := HostActionType(strings.ToLower(strings.TrimSpace(s)))
	if err := Validate(hostActionRequest{Action: a}); err != nil {
		return "", err
	}
	return a, nil
}
