// Package ranking orders leg offers so the combiner, which stops at its
// combination cap, meets the most attractive candidates first.
package ranking

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/models"
)

type Eligibility interface {
	IsEligible(carrierCode string) bool
}

// FaceValuer expresses an offer's fare in a single comparable currency.
type FaceValuer interface {
	FaceValue(offer models.LegOffer) decimal.Decimal
}

type Ranker struct {
	eligibility Eligibility
	faceValue   FaceValuer
}

func NewRanker(eligibility Eligibility) Ranker {
	return Ranker{eligibility: eligibility}
}

// WithFaceValue returns a copy of r that compares fares through fv. Without
// one, raw fare amounts are compared and all offers must share a currency.
func (r Ranker) WithFaceValue(fv FaceValuer) Ranker {
	r.faceValue = fv
	return r
}

// Rank returns a stably sorted copy: fewer stops first, then eligible
// carriers, then lower face-value fare.
func (r Ranker) Rank(offers []models.LegOffer) []models.LegOffer {
	ranked := make([]models.LegOffer, len(offers))
	copy(ranked, offers)

	sort.SliceStable(ranked, func(i, j int) bool {
		return r.Less(ranked[i], ranked[j])
	})
	return ranked
}

func (r Ranker) Less(a, b models.LegOffer) bool {
	if a.Stops != b.Stops {
		return a.Stops < b.Stops
	}
	ea, eb := r.eligible(a.CarrierCode), r.eligible(b.CarrierCode)
	if ea != eb {
		return ea
	}
	return r.fare(a).LessThan(r.fare(b))
}

func (r Ranker) fare(o models.LegOffer) decimal.Decimal {
	if r.faceValue == nil {
		return o.Fare.Amount
	}
	return r.faceValue.FaceValue(o)
}

// Pair is a candidate pair of chained legs with its combined converted price.
type Pair struct {
	Stops         int
	EligibleCount int
	Price         decimal.Decimal
}

func (r Ranker) NewPair(first, second models.LegOffer, price decimal.Decimal) Pair {
	p := Pair{Stops: first.Stops + second.Stops, Price: price}
	if r.eligible(first.CarrierCode) {
		p.EligibleCount++
	}
	if r.eligible(second.CarrierCode) {
		p.EligibleCount++
	}
	return p
}

// BetterPair applies the same policy to leg pairs: fewer stops, more eligible
// carriers, lower combined price.
func BetterPair(a, b Pair) bool {
	if a.Stops != b.Stops {
		return a.Stops < b.Stops
	}
	if a.EligibleCount != b.EligibleCount {
		return a.EligibleCount > b.EligibleCount
	}
	return a.Price.LessThan(b.Price)
}

func (r Ranker) eligible(code string) bool {
	return r.eligibility != nil && r.eligibility.IsEligible(code)
}
