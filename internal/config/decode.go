package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode decodes the type specific settings of a component into dest.
// Durations may be given as strings like "10s".
func (c ComponentConfig) Decode(dest any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         nil,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           dest,
	})
	if err != nil {
		return fmt.Errorf("creating decoder for %s '%s': %w", c.Type, c.Name, err)
	}
	if err := decoder.Decode(c.Config); err != nil {
		return fmt.Errorf("decoding config for %s '%s': %w", c.Type, c.Name, err)
	}
	return nil
}
