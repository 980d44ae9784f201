package httpapi

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// validateOrderPayload checks the raw submission body structurally
// before binding, so malformed requests fail with a useful message
// instead of a bare decode error.
func validateOrderPayload(raw []byte) error {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return fmt.Errorf("request body is empty")
	}
	if !gjson.Valid(body) {
		return fmt.Errorf("request body is not valid json")
	}
	parsed := gjson.Parse(body)
	if !parsed.IsObject() {
		return fmt.Errorf("request body must be a json object")
	}
	for _, field := range []string{"account_id", "symbol", "side", "type"} {
		v := parsed.Get(field)
		if !v.Exists() || strings.TrimSpace(v.String()) == "" {
			return fmt.Errorf("missing field %q", field)
		}
	}
	qty := parsed.Get("qty")
	if !qty.Exists() {
		return fmt.Errorf("missing field %q", "qty")
	}
	if qty.Type != gjson.Number {
		return fmt.Errorf("field %q must be a number", "qty")
	}
	return nil
}
