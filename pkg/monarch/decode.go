package monarch

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode maps a raw result tree (or a subtree of one) onto target, matching
// keys against the target's json tags. The transport never coerces results
// into types; callers that want typed access opt in here.
func Decode(result map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("building the result decoder: %w", err)
	}

	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("decoding the result: %w", err)
	}

	return nil
}
