package enforcer

import (
	"context"
	"fmt"
	"strings"

	"github.com/CameronXie/mealserve/internal/decisionmaker"
	"github.com/CameronXie/mealserve/internal/infoprovider"
)

type Enforcer interface {
	Enforce(ctx context.Context, req *AccessRequest) (bool, error)
}

type AccessRequest struct {
	Subject  string
	Resource string
	Action   string
}

type enforcer struct {
	infoProvider  infoprovider.InfoProvider
	decisionMaker decisionmaker.DecisionMaker
}

func (e *enforcer) Enforce(ctx context.Context, req *AccessRequest) (bool, error) {
	roles, err := e.infoProvider.GetRoles(ctx, req.Subject)
	if err != nil {
		return false, fmt.Errorf("failed to get roles: %w", err)
	}

	return e.decisionMaker.MakeDecision(
		ctx,
		&decisionmaker.DecisionRequest{
			Subject:  req.Subject,
			Roles:    roles,
			Resource: strings.ToLower(req.Resource),
			Action:   strings.ToLower(req.Action),
		},
	)
}

func NewEnforcer(infoProvider infoprovider.InfoProvider, decisionMaker decisionmaker.DecisionMaker) Enforcer {
	return &enforcer{infoProvider: infoProvider, decisionMaker: decisionMaker}
}
