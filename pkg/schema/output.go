package schema

import "encoding/json"

// Report is the client-facing collapse of a Result tree into one of
// spec.md §4.3's output shapes.
type Report struct {
	Valid    bool      `json:"valid"`
	Keyword  string    `json:"keyword,omitempty"`
	Location string    `json:"instanceLocation,omitempty"`
	Absolute string    `json:"absoluteKeywordLocation,omitempty"`
	Error    string    `json:"error,omitempty"`
	Errors   []Report  `json:"errors,omitempty"`
}

// MarshalJSON lets Report satisfy json.Marshaler directly, matching the
// teacher's convention of hand-rolled marshaling for wire-shaped types
// rather than relying purely on struct tags.
func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(alias(r))
}

// Format collapses a Result tree per spec.md §4.3:
//   - Flag: {"valid": bool}, no detail (the engine already short-circuited).
//   - Basic: a flat list of every failing leaf, annotated with its location.
//   - Detailed: the result tree reshaped 1:1 into nested Reports.
func Format(result *Result, format OutputFormat) Report {
	switch format {
	case OutputFlag:
		return Report{Valid: result.AllValid()}
	case OutputBasic:
		return formatBasic(result)
	default:
		return formatDetailed(result)
	}
}

func formatBasic(result *Result) Report {
	valid := result.AllValid()
	out := Report{Valid: valid}
	if valid {
		return out
	}
	var collect func(r *Result)
	collect = func(r *Result) {
		// r.Keyword == "" marks a schema-object wrapper (the Result drive()
		// itself returns, or the nested result a $ref/combinator drives into)
		// rather than a keyword leaf; only its failing children are real
		// errors, so it's never reported itself.
		if !r.IsValid && r.Keyword != "" {
			out.Errors = append(out.Errors, Report{
				Valid:    false,
				Keyword:  r.Keyword,
				Location: r.InstanceLocation.String(),
				Absolute: r.AbsoluteLocation,
				Error:    r.ErrorMessage,
			})
		}
		for _, n := range r.Nested {
			collect(n)
		}
	}
	collect(result)
	return out
}

func formatDetailed(result *Result) Report {
	out := Report{
		Valid:    result.IsValid,
		Keyword:  result.Keyword,
		Location: result.InstanceLocation.String(),
		Absolute: result.AbsoluteLocation,
		Error:    result.ErrorMessage,
	}
	for _, n := range result.Nested {
		out.Errors = append(out.Errors, formatDetailed(n))
	}
	if len(out.Errors) > 0 {
		out.Valid = result.AllValid()
	}
	return out
}
