// Package policies embeds the role based access control policies of the API.
package policies

import _ "embed"

// RegoQuery evaluates to true when the request is allowed by RegoPolicy.
const RegoQuery = "data.mealserve.rbac.allow"

var (
	//go:embed rbac.conf
	CasbinModel string

	//go:embed rbac.csv
	CasbinPolicy string

	//go:embed rbac.rego
	RegoPolicy string
)
