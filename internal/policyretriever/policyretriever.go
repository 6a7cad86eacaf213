package policyretriever

// PolicyRetriever returns the policy source evaluated by a decision maker.
type PolicyRetriever interface {
	GetPolicy() (string, error)
}

type staticPolicyRetriever struct {
	policy string
}

// GetPolicy returns the policy the retriever was created with.
func (p *staticPolicyRetriever) GetPolicy() (string, error) {
	return p.policy, nil
}

// NewStaticPolicyRetriever creates a PolicyRetriever serving a fixed policy, such as one embedded at build time.
func NewStaticPolicyRetriever(policy string) PolicyRetriever {
	return &staticPolicyRetriever{policy: policy}
}
