package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so error messages match the request payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// InvalidFieldsError reports present fields that break a constraint other
// than "required", such as a length limit
type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Validate runs struct validation and returns the JSON names of the missing
// required fields, in declaration order. A nil slice and nil error means the
// payload is valid. Other constraint failures come back as *InvalidFieldsError.
func Validate(payload interface{}) ([]string, error) {
	err := validate.Struct(payload)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return missing, nil
	}
	return nil, &InvalidFieldsError{Fields: invalid}
}

// AvatarPatch reads the avatar of an update entry. set is false when the
// field was omitted; an explicit null is set with a nil value.
func AvatarPatch(raw json.RawMessage) (value datatypes.JSON, set bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}
	return datatypes.JSON(trimmed), true
}

// AvatarJSON converts an optional raw avatar document into the column value.
// Absent and explicit null both map to SQL NULL.
func AvatarJSON(raw json.RawMessage) datatypes.JSON {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return datatypes.JSON(trimmed)
}
