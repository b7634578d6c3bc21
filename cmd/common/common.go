// Package common holds helpers shared by the cwtrain commands.
package common

import "github.com/GiGurra/boa/pkg/boa"

// DefaultParamEnricher derives flag names and short flags from Params field names.
func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}
