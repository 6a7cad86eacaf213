package casbin

import (
	"context"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"

	"github.com/CameronXie/mealserve/internal/decisionmaker"
)

type decisionMaker struct {
	enforcer casbin.IEnforcer
}

// MakeDecision reloads the policy and allows the request when any of the subject's roles is granted
// the action on the resource.
func (d *decisionMaker) MakeDecision(_ context.Context, req *decisionmaker.DecisionRequest) (bool, error) {
	err := d.enforcer.LoadPolicy()
	if err != nil {
		return false, err
	}

	for _, role := range req.Roles {
		ok, err := d.enforcer.Enforce(role, req.Resource, req.Action)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

// NewDecisionMaker creates a new instance of DecisionMaker using the provided Casbin configuration and policy repository adapter.
// It returns a DecisionMaker for processing decision requests, or an error if model creation or enforcer initialization fails.
func NewDecisionMaker(config string, policyRepo persist.Adapter) (decisionmaker.DecisionMaker, error) {
	m, err := model.NewModelFromString(config)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, policyRepo)
	if err != nil {
		return nil, err
	}

	return &decisionMaker{enforcer: enforcer}, nil
}
