package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequestBody indicates the request body could not be decoded
// or failed validation.
var ErrInvalidRequestBody = errors.New("invalid request body")

var validate = validator.New()

// DecodeAndValidate decodes the JSON request body into dst and runs its
// validation tags. The returned error wraps ErrInvalidRequestBody so
// handlers can map it to a 400 uniformly.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
	}
	return nil
}
