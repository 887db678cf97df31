package pricing

import "strings"

// CarrierEligibility reports whether a carrier quotes its hub-departing fares
// in the hub's local currency.
type CarrierEligibility interface {
	IsEligible(carrierCode string) bool
}

// CarrierSet is an immutable set of eligible carrier codes.
type CarrierSet struct {
	codes map[string]struct{}
}

func NewCarrierSet(codes ...string) CarrierSet {
	set := CarrierSet{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set.codes[c] = struct{}{}
		}
	}
	return set
}

func (s CarrierSet) IsEligible(carrierCode string) bool {
	_, ok := s.codes[strings.ToUpper(carrierCode)]
	return ok
}

func (s CarrierSet) Len() int {
	return len(s.codes)
}
