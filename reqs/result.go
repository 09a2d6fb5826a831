package reqs

// Status is the provider's decision on a request.
type Status string

// Known statuses. Providers may return others; they are kept verbatim.
const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusPending  Status = "pending"
	StatusError    Status = "error"
)

// Accepted reports whether s is StatusAccepted.
func (s Status) Accepted() bool { return s == StatusAccepted }

// Result is a decoded provider decision.
type Result[T any] struct {
	Status Status `json:"status"`
	Body   *T     `json:"body,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// RawResult is a provider decision before the result body is decoded.
type RawResult struct {
	Status Status `json:"status"`
	Body   []byte `json:"body,omitempty"`
	Reason string `json:"reason,omitempty"`
}
