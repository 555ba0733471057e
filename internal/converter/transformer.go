// =============================================================================
// Incident Report - Transformation Engine
// =============================================================================
//
// This module applies optional cleanup rules to document fields after
// conversion. Rules address fields by identifier, so they are written against
// the sanitized column names ("nom", "areadespatx", ...).
//
// TRANSFORMATION TYPES:
//   - String manipulations (trim, case conversion, whitespace folding)
//   - Literal and regular expression replacements
//   - Defaults for blank cells
//   - Date re-formatting
//
// Rules never add or remove fields; only values change.
//
// =============================================================================

package converter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ginjaninja78/incident-report/internal/config"
	"github.com/ginjaninja78/incident-report/internal/types"
)

// whitespaceRun matches runs of whitespace for normalize_whitespace.
var whitespaceRun = regexp.MustCompile(`\s+`)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer handles field value transformations.
type Transformer struct {
	rules map[string][]config.TransformationAction
}

// NewTransformer creates a new Transformer with the given rules. Rules for
// the same field are concatenated in order.
func NewTransformer(rules []config.TransformationRule) *Transformer {
	byField := make(map[string][]config.TransformationAction, len(rules))
	for _, rule := range rules {
		byField[rule.Field] = append(byField[rule.Field], rule.Actions...)
	}

	return &Transformer{
		rules: byField,
	}
}

// Empty reports whether the transformer has no rules.
func (t *Transformer) Empty() bool {
	return len(t.rules) == 0
}

// Transform applies all rules for fieldName to value.
//
// PARAMETERS:
//   - fieldName: The identifier of the field being transformed.
//   - value: The current value.
//
// RETURNS:
//   - The transformed value.
//   - An error if an action is unknown or misconfigured.
func (t *Transformer) Transform(fieldName, value string) (string, error) {
	actions, ok := t.rules[fieldName]
	if !ok {
		return value, nil
	}

	for _, action := range actions {
		var err error
		value, err = ApplyTransformation(value, action)
		if err != nil {
			return value, fmt.Errorf("failed to apply %s to field %s: %w", action.Type, fieldName, err)
		}
	}

	return value, nil
}

// TransformDocument applies the rules to every record of doc in place.
func (t *Transformer) TransformDocument(doc *types.Document) error {
	if t.Empty() || doc.Len() == 0 {
		return nil
	}

	for r := range doc.Records {
		fields := doc.Records[r].Fields
		for f := range fields {
			value, err := t.Transform(fields[f].Name, fields[f].Value)
			if err != nil {
				return fmt.Errorf("record %d: %w", r+1, err)
			}
			fields[f].Value = value
		}
	}

	return nil
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// ApplyTransformation applies a single transformation action to a value.
//
// PARAMETERS:
//   - value: The current value of the field.
//   - action: The transformation action to apply.
//
// RETURNS:
//   - The transformed value.
//   - An error if the transformation fails.
func ApplyTransformation(value string, action config.TransformationAction) (string, error) {
	switch action.Type {

	// =========================================================================
	// STRING MANIPULATIONS
	// =========================================================================

	case "trim":
		return strings.TrimSpace(value), nil

	case "uppercase":
		return strings.ToUpper(value), nil

	case "lowercase":
		return strings.ToLower(value), nil

	case "normalize_whitespace":
		// "  Sala   de   juntes " -> "Sala de juntes"
		return strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " ")), nil

	// =========================================================================
	// REPLACEMENTS
	// =========================================================================

	case "replace":
		if action.Find == "" {
			return value, fmt.Errorf("replace requires a find value")
		}
		return strings.ReplaceAll(value, action.Find, action.Value), nil

	case "regex_replace":
		re, err := regexp.Compile(action.Find)
		if err != nil {
			return value, fmt.Errorf("invalid regex pattern: %w", err)
		}
		return re.ReplaceAllString(value, action.Value), nil

	// =========================================================================
	// DEFAULTS
	// =========================================================================

	case "if_empty_use_default":
		if strings.TrimSpace(value) == "" {
			return action.Value, nil
		}
		return value, nil

	// =========================================================================
	// DATE FORMATTING
	// =========================================================================

	case "format_date":
		// VALUE FORMAT: "input_format|output_format" (Go layouts)
		//
		// EXAMPLE:
		//   Input: "2025-11-15"
		//   Action: format_date with value "2006-01-02|02/01/2006"
		//   Output: "15/11/2025"
		//
		// Values that do not match the input layout are left unchanged.
		parts := strings.Split(action.Value, "|")
		if len(parts) != 2 {
			return value, fmt.Errorf("format_date value must be \"input|output\"")
		}

		t, err := time.Parse(strings.TrimSpace(parts[0]), strings.TrimSpace(value))
		if err != nil {
			return value, nil
		}

		return t.Format(strings.TrimSpace(parts[1])), nil

	default:
		return value, fmt.Errorf("unknown transformation type: %s", action.Type)
	}
}
