package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Decode unmarshals the JSON value at path inside body into v. An empty path
// decodes the whole body; otherwise path uses gjson syntax ("data",
// "objects.counties").
func Decode(body []byte, path string, v any) error {
	raw := body
	if path != "" {
		res := gjson.GetBytes(body, path)
		if !res.Exists() {
			return fmt.Errorf("%w: %q", ErrPathNotFound, path)
		}
		raw = []byte(res.Raw)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
