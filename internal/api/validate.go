package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var errBodyNotJSON = errors.New("Request body must be JSON")

// fieldTypeError reports a JSON field whose value has the wrong type.
type fieldTypeError struct {
	Field string
}

func (e *fieldTypeError) Error() string {
	return fmt.Sprintf("Field '%s' must be a string", e.Field)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// failedFields groups the json names of invalid fields by the tag that
// rejected them, keeping struct field order.
func failedFields(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string][]string)
	for _, fe := range verrs {
		out[fe.Tag()] = append(out[fe.Tag()], fe.Field())
	}
	return out
}

// decodeObject reads a JSON object from the request body into dst.
// With allowEmpty, an empty body or a JSON null leaves dst untouched.
func decodeObject(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return errBodyNotJSON
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return nil
		}
		return errBodyNotJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return errBodyNotJSON
	}
	if fields == nil {
		if allowEmpty {
			return nil
		}
		return errBodyNotJSON
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &fieldTypeError{Field: typeErr.Field}
		}
		return errBodyNotJSON
	}
	return nil
}
