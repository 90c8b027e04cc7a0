// Package tools implements the named JMA data operations shared by the MCP
// server and the command line.
package tools

// Kind tags the outcome of an operation.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Problem describes a not-found or validation outcome. It encodes as the
// error envelope returned to callers.
type Problem struct {
	Message   string   `json:"error"`
	Hint      string   `json:"hint,omitempty"`
	Available []string `json:"available,omitempty"`
}

// Result is an operation outcome: Data for KindOK, Problem otherwise.
type Result struct {
	Kind    Kind
	Data    any
	Problem *Problem
}

// OK wraps a successful payload.
func OK(data any) Result {
	return Result{Kind: KindOK, Data: data}
}

// NotFound builds a not-found result.
func NotFound(p Problem) Result {
	return Result{Kind: KindNotFound, Problem: &p}
}

// Invalid builds a validation result.
func Invalid(p Problem) Result {
	return Result{Kind: KindInvalid, Problem: &p}
}

// Payload is what surfaces serialise: the data, or the error envelope.
func (r Result) Payload() any {
	if r.Problem != nil {
		return r.Problem
	}
	return r.Data
}
