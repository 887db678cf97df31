package models

import (
	"fmt"
	"strings"
)

// LegRole tags a leg with its position relative to the hub.
type LegRole int

const (
	OutboundToHub LegRole = iota
	OutboundFromHub
	ReturnToHub
	ReturnFromHub
)

var OneWayRoles = []LegRole{OutboundToHub, OutboundFromHub}

var RoundTripRoles = []LegRole{OutboundToHub, OutboundFromHub, ReturnToHub, ReturnFromHub}

func (r LegRole) String() string {
	switch r {
	case OutboundToHub:
		return "outbound_to_hub"
	case OutboundFromHub:
		return "outbound_from_hub"
	case ReturnToHub:
		return "return_to_hub"
	case ReturnFromHub:
		return "return_from_hub"
	default:
		return "unknown"
	}
}

func (r LegRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *LegRole) UnmarshalText(text []byte) error {
	for _, role := range RoundTripRoles {
		if role.String() == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown leg role %q", text)
}

// RequiresDirect reports whether offers for this role must be non-stop.
func (r LegRole) RequiresDirect() bool {
	return r == OutboundToHub || r == ReturnFromHub
}

// DepartsHub reports whether the leg takes off from the hub airport.
func (r LegRole) DepartsHub() bool {
	return r == OutboundFromHub || r == ReturnFromHub
}

// Route is the origin, hub and final destination of a search.
type Route struct {
	Origin      string `json:"origin"`
	Hub         string `json:"hub"`
	Destination string `json:"destination"`
}

func NewRoute(origin, hub, destination string) Route {
	return Route{
		Origin:      strings.ToUpper(origin),
		Hub:         strings.ToUpper(hub),
		Destination: strings.ToUpper(destination),
	}
}

// Endpoints returns the airport pair a leg with this role must connect.
func (r LegRole) Endpoints(route Route) (from, to string) {
	switch r {
	case OutboundToHub:
		return route.Origin, route.Hub
	case OutboundFromHub:
		return route.Hub, route.Destination
	case ReturnToHub:
		return route.Destination, route.Hub
	case ReturnFromHub:
		return route.Hub, route.Origin
	default:
		return "", ""
	}
}
