package hypergraph

import "fmt"

// recognizedKeys is the closed set of attribute keys accepted per node kind.
// Kinds not listed here accept any attributes; listed kinds reject unknown
// keys at insertion so shape errors surface when the graph is built, not
// when an analysis stage first reads the attribute.
var recognizedKeys = map[string]map[string]bool{
	"agent": {
		"name":          true,
		"state":         true,
		"workload":      true,
		"efficiency":    true,
		"cases_handled": true,
		"role":          true,
	},
	"event": {
		"case_id":    true,
		"time":       true,
		"event_type": true,
	},
	"stock": {
		"name":          true,
		"value":         true,
		"initial_value": true,
	},
	"statute": {
		"jurisdiction": true,
		"citation":     true,
		"year":         true,
		"text":         true,
	},
	"case": {
		"jurisdiction": true,
		"citation":     true,
		"year":         true,
		"court":        true,
		"text":         true,
	},
	"principle": {
		"jurisdiction": true,
		"text":         true,
		"inference":    true,
	},
}

func validateAttributes(kind string, attrs map[string]interface{}) error {
	allowed, known := recognizedKeys[kind]
	if !known {
		return nil
	}
	for key := range attrs {
		if !allowed[key] {
			return fmt.Errorf("unrecognized attribute %q for kind %q", key, kind)
		}
	}
	return nil
}
