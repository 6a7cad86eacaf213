//go:build !opa

package main

import (
	"log/slog"

	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"

	"github.com/CameronXie/mealserve/internal/decisionmaker/casbin"
	"github.com/CameronXie/mealserve/internal/enforcer"
	"github.com/CameronXie/mealserve/internal/infoprovider"
	"github.com/CameronXie/mealserve/policies"
)

// newEnforcer builds the Casbin backed enforcer from the embedded model and policy.
func newEnforcer(infoProvider infoprovider.InfoProvider, logger *slog.Logger) (enforcer.Enforcer, error) {
	logger.Info("initializing enforcer with Casbin")

	decisionMaker, err := casbin.NewDecisionMaker(policies.CasbinModel, stringadapter.NewAdapter(policies.CasbinPolicy))
	if err != nil {
		return nil, err
	}

	return enforcer.NewEnforcer(infoProvider, decisionMaker), nil
}
