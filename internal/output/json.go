package output

import "encoding/json"

// JSONFormatter emits the plan as JSON
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(plan *Plan) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(plan, "", "  ")
	}
	return json.Marshal(plan)
}
