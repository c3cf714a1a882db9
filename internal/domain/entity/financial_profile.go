package entity

import (
	"time"

	"github.com/google/uuid"
)

// FinancialProfile holds a user's declared recurring costs and reference income.
type FinancialProfile struct {
	UserID               uuid.UUID
	HousingCost          float64
	FoodCost             float64
	TransportationCost   float64
	HealthcareCost       float64
	OtherNecessitiesCost float64
	ChildcareCost        float64
	Taxes                float64
	TotalExpenses        float64
	MedianFamilyIncome   float64
	UpdatedAt            time.Time
}

// CostsByCategory maps each expense category to its declared cost.
func (p FinancialProfile) CostsByCategory() map[string]float64 {
	return map[string]float64{
		CategoryHousing:          p.HousingCost,
		CategoryFood:             p.FoodCost,
		CategoryTransportation:   p.TransportationCost,
		CategoryHealthcare:       p.HealthcareCost,
		CategoryOtherNecessities: p.OtherNecessitiesCost,
		CategoryChildcare:        p.ChildcareCost,
		CategoryTaxes:            p.Taxes,
	}
}

// Total returns TotalExpenses, or the sum of the individual costs when it was not declared.
func (p FinancialProfile) Total() float64 {
	if p.TotalExpenses > 0 {
		return p.TotalExpenses
	}
	return p.HousingCost + p.FoodCost + p.TransportationCost + p.HealthcareCost +
		p.OtherNecessitiesCost + p.ChildcareCost + p.Taxes
}
