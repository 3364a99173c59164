package commerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// rootPath names the document root in error messages.
const rootPath = "response"

// ValidationError reports a backend response that violates its shape contract.
// Path is qualified like "[0].order_items[2].price"; empty means the document root.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	path := e.Path
	if path == "" {
		path = rootPath
	}
	return path + ": " + e.Reason
}

// decode validates raw against schema and unmarshals it into v.
// Only the first violation is reported. A value the schema admits but Go cannot hold
// still comes back as a *ValidationError carrying the decoder's field path.
func decode(schema *gojsonschema.Schema, raw json.RawMessage, v any) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &ValidationError{Reason: "invalid JSON: " + err.Error()}
	}
	if !result.Valid() {
		return firstViolation(result.Errors())
	}
	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ValidationError{Path: typeErr.Field, Reason: "cannot decode " + typeErr.Value}
		}
		return &ValidationError{Reason: err.Error()}
	}
	return nil
}

type violation struct {
	segments []string
	reason   string
}

// firstViolation picks the violation with the smallest path. Array indexes compare
// numerically so [2] precedes [10].
func firstViolation(errs []gojsonschema.ResultError) *ValidationError {
	violations := make([]violation, 0, len(errs))
	for _, e := range errs {
		violations = append(violations, toViolation(e))
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return segmentsLess(violations[i].segments, violations[j].segments)
	})
	first := violations[0]
	return &ValidationError{Path: formatPath(first.segments), Reason: first.reason}
}

func toViolation(e gojsonschema.ResultError) violation {
	segments := fieldSegments(e.Field())
	details := e.Details()

	switch e.Type() {
	case "required":
		property := fmt.Sprint(details["property"])
		if len(segments) == 0 || segments[len(segments)-1] != property {
			segments = append(segments, property)
		}
		return violation{segments: segments, reason: "field required"}
	case "invalid_type":
		return violation{segments: segments, reason: "expected " + describeTypes(fmt.Sprint(details["expected"]))}
	case "format":
		return violation{segments: segments, reason: "expected " + fmt.Sprint(details["format"])}
	case "number_gte", "number_lte":
		return violation{segments: segments, reason: "out of range"}
	default:
		return violation{segments: segments, reason: e.Description()}
	}
}

func segmentsLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		ai, aErr := strconv.Atoi(a[i])
		bi, bErr := strconv.Atoi(b[i])
		if aErr == nil && bErr == nil {
			return ai < bi
		}
		return a[i] < b[i]
	}
	return len(a) < len(b)
}

// fieldSegments splits a gojsonschema field ("(root)", "0.order.email") into segments.
func fieldSegments(field string) []string {
	if field == "" || field == gojsonschema.STRING_CONTEXT_ROOT {
		return nil
	}
	field = strings.TrimPrefix(field, gojsonschema.STRING_CONTEXT_ROOT+".")
	return strings.Split(field, ".")
}

// formatPath renders segments with array indexes in brackets: [0].order_items[2].price.
func formatPath(segments []string) string {
	var b strings.Builder
	for _, seg := range segments {
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// describeTypes turns "[string,null]" into "string or null".
func describeTypes(expected string) string {
	expected = strings.TrimSuffix(strings.TrimPrefix(expected, "["), "]")
	return strings.ReplaceAll(expected, ",", " or ")
}
