package ai

import "strings"

// modelPrice is the list price in USD per million tokens.
type modelPrice struct {
	input  float64
	output float64
}

var modelPrices = map[string]map[string]modelPrice{
	"openai": {
		"gpt-4o-mini":  {input: 0.15, output: 0.60},
		"gpt-4o":       {input: 2.50, output: 10.00},
		"gpt-4.1-mini": {input: 0.40, output: 1.60},
		"gpt-4.1":      {input: 2.00, output: 8.00},
	},
	"gemini": {
		"gemini-2.5-flash-lite": {input: 0.10, output: 0.40},
		"gemini-2.5-flash":      {input: 0.30, output: 2.50},
		"gemini-2.5-pro":        {input: 1.25, output: 10.00},
	},
}

// EstimateCost prices one call. Unknown models cost 0. A dated or suffixed
// model name ("gpt-4o-mini-2024-07-18") uses the longest known prefix.
func EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	prices, ok := modelPrices[strings.ToLower(provider)]
	if !ok {
		return 0
	}

	model = strings.ToLower(model)
	price, ok := prices[model]
	if !ok {
		best := ""
		for name, p := range prices {
			if strings.HasPrefix(model, name) && len(name) > len(best) {
				best, price = name, p
			}
		}
		if best == "" {
			return 0
		}
	}

	return float64(inputTokens)/1_000_000*price.input + float64(outputTokens)/1_000_000*price.output
}
