package decisionmaker

import "context"

// DecisionRequest asks whether a subject holding Roles may perform Action on Resource.
type DecisionRequest struct {
	Subject  string
	Roles    []string
	Resource string
	Action   string
}

type DecisionMaker interface {
	MakeDecision(ctx context.Context, req *DecisionRequest) (bool, error)
}
