package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"MacroPulse/internal/domain/models"
)

const promptTemplate = `You are a friendly financial educator for primary school students or beginners.
Analyze the relationship between the following selected factors:

Macro Factors: %s
Assets: %s
Timeframe: %s

Here is a simplified sample of the data points (Start, Middle, End):
%s

Explain how the macro factors (like interest rates or money supply) likely influenced the asset prices.
Keep it simple. Use analogies (e.g., "Interest rates are like gravity...").

Return the response in strictly valid JSON format.`

func buildPrompt(req models.InsightRequest) (string, error) {
	sample := req.Sample
	if sample == nil {
		sample = []models.DailyPoint{}
	}
	data, err := json.Marshal(sample)
	if err != nil {
		return "", fmt.Errorf("encode sample: %w", err)
	}
	return fmt.Sprintf(promptTemplate,
		strings.Join(req.Macros, ", "),
		strings.Join(req.Assets, ", "),
		req.Window,
		data,
	), nil
}
