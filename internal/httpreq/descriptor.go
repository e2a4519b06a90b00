package httpreq

import (
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Descriptor describes a single HTTP call to perform.
type Descriptor struct {
	// URL is the absolute URL of the request.
	URL string `validate:"required,url"`
	// Method is the HTTP method, defaults to GET.
	Method string `validate:"oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	// Headers are sent as is, defaults to none.
	Headers map[string]string `validate:"-"`
	// Body is serialized as JSON, empty values (nil, false, zero numbers,
	// empty strings, nil maps, slices and pointers) send no body.
	Body any `validate:"-"`
}

// withDefaults returns a copy of the descriptor with the defaults applied, the
// original descriptor is never mutated.
func (d Descriptor) withDefaults() Descriptor {
	d.Method = strings.ToUpper(strings.TrimSpace(d.Method))
	if d.Method == "" {
		d.Method = http.MethodGet
	}

	headers := make(map[string]string, len(d.Headers))
	for k, v := range d.Headers {
		headers[k] = v
	}
	d.Headers = headers

	if isEmptyBody(d.Body) {
		d.Body = nil
	}

	return d
}

func isEmptyBody(body any) bool {
	if body == nil {
		return true
	}

	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.IsZero()
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}

	return false
}

func (d Descriptor) validate() error {
	if err := structValidator.Struct(d); err != nil {
		return err
	}

	// The HTTP client drops bodies on OPTIONS requests.
	if d.Body != nil && (d.Method == http.MethodGet || d.Method == http.MethodHead || d.Method == http.MethodOptions) {
		return fmt.Errorf("request with %s method cannot have body", d.Method)
	}

	return nil
}
