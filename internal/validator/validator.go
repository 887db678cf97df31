package validator

import (
	"strings"

	"github.com/dharmasatrya/hubfare/internal/models"
)

// Validate keeps the offers that connect the airports expected for role on
// route and, for roles that must be non-stop, are direct.
func Validate(offers []models.LegOffer, role models.LegRole, route models.Route) []models.LegOffer {
	from, to := role.Endpoints(route)
	result := make([]models.LegOffer, 0, len(offers))

	for _, o := range offers {
		if !strings.EqualFold(o.Origin, from) || !strings.EqualFold(o.Destination, to) {
			continue
		}
		if role.RequiresDirect() && !o.IsDirect() {
			continue
		}
		result = append(result, o)
	}

	return result
}
