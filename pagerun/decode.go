/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package pagerun

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeResult maps the dispatcher's generic JSON payload onto a typed value
// using the json tags. Numbers arrive as float64 from the JSON decoder, weak
// typing converts them to the integer fields of the typed results.
func decodeResult(payload, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           result,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create result decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
