//go:build opa

package main

import (
	"log/slog"

	"github.com/CameronXie/mealserve/internal/decisionmaker/opa"
	"github.com/CameronXie/mealserve/internal/enforcer"
	"github.com/CameronXie/mealserve/internal/infoprovider"
	"github.com/CameronXie/mealserve/internal/policyretriever"
	"github.com/CameronXie/mealserve/policies"
)

// newEnforcer builds the OPA backed enforcer from the embedded Rego policy.
func newEnforcer(infoProvider infoprovider.InfoProvider, logger *slog.Logger) (enforcer.Enforcer, error) {
	logger.Info("initializing enforcer with OPA")

	decisionMaker := opa.NewDecisionMaker(
		policyretriever.NewStaticPolicyRetriever(policies.RegoPolicy),
		policies.RegoQuery,
	)

	return enforcer.NewEnforcer(infoProvider, decisionMaker), nil
}
