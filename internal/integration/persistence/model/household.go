package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// HouseholdModel represents the households table. One row per user.
type HouseholdModel struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	NumAdults   int       `gorm:"not null;default:1"`
	NumChildren int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the HouseholdModel.
func (HouseholdModel) TableName() string {
	return "households"
}

// ToEntity converts a HouseholdModel to a domain Household entity.
func (m *HouseholdModel) ToEntity() *entity.Household {
	return &entity.Household{
		UserID:      m.UserID,
		NumAdults:   m.NumAdults,
		NumChildren: m.NumChildren,
		UpdatedAt:   m.UpdatedAt,
	}
}

// HouseholdFromEntity creates a HouseholdModel from a domain Household entity.
func HouseholdFromEntity(h *entity.Household) *HouseholdModel {
	return &HouseholdModel{
		UserID:      h.UserID,
		NumAdults:   h.NumAdults,
		NumChildren: h.NumChildren,
		UpdatedAt:   h.UpdatedAt,
	}
}

// FinancialProfileModel represents the financial_profiles table. One row per user.
type FinancialProfileModel struct {
	UserID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HousingCost          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	FoodCost             decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TransportationCost   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	HealthcareCost       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	OtherNecessitiesCost decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ChildcareCost        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Taxes                decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalExpenses        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MedianFamilyIncome   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
}

// TableName returns the table name for the FinancialProfileModel.
func (FinancialProfileModel) TableName() string {
	return "financial_profiles"
}

// ToEntity converts a FinancialProfileModel to a domain FinancialProfile entity.
func (m *FinancialProfileModel) ToEntity() *entity.FinancialProfile {
	return &entity.FinancialProfile{
		UserID:               m.UserID,
		HousingCost:          m.HousingCost.InexactFloat64(),
		FoodCost:             m.FoodCost.InexactFloat64(),
		TransportationCost:   m.TransportationCost.InexactFloat64(),
		HealthcareCost:       m.HealthcareCost.InexactFloat64(),
		OtherNecessitiesCost: m.OtherNecessitiesCost.InexactFloat64(),
		ChildcareCost:        m.ChildcareCost.InexactFloat64(),
		Taxes:                m.Taxes.InexactFloat64(),
		TotalExpenses:        m.TotalExpenses.InexactFloat64(),
		MedianFamilyIncome:   m.MedianFamilyIncome.InexactFloat64(),
		UpdatedAt:            m.UpdatedAt,
	}
}

// FinancialProfileFromEntity creates a FinancialProfileModel from a domain entity.
func FinancialProfileFromEntity(p *entity.FinancialProfile) *FinancialProfileModel {
	return &FinancialProfileModel{
		UserID:               p.UserID,
		HousingCost:          money(p.HousingCost),
		FoodCost:             money(p.FoodCost),
		TransportationCost:   money(p.TransportationCost),
		HealthcareCost:       money(p.HealthcareCost),
		OtherNecessitiesCost: money(p.OtherNecessitiesCost),
		ChildcareCost:        money(p.ChildcareCost),
		Taxes:                money(p.Taxes),
		TotalExpenses:        money(p.TotalExpenses),
		MedianFamilyIncome:   money(p.MedianFamilyIncome),
		UpdatedAt:            p.UpdatedAt,
	}
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
