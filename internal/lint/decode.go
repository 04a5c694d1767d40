package lint

import (
	"github.com/go-viper/mapstructure/v2"
)

// Decode copies raw declaration fields into out. Input is weakly typed so
// numeric parameter values written without quotes become strings.
func Decode(fields map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(fields)
}
