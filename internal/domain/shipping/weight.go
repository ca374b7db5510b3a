package shipping

import "github.com/shopspring/decimal"

// Weight and pricing constants. All amounts are integer minor currency units
// (cents); weights cross the API boundary in grams and are converted to
// kilograms only for per-kilogram math.
const (
	// MinChargeableWeightGrams is the floor applied before price
	// calculation so that zero-weight carts never produce a zero quote.
	MinChargeableWeightGrams int64 = 100

	// AggregationFloorGrams is the floor the public rate endpoint applies
	// when a cart sums to zero (e.g. only digital items).
	AggregationFloorGrams int64 = 500

	// SampleWeightGrams is the representative weight used for catalog
	// discovery and synchronization calls.
	SampleWeightGrams int64 = 1000

	// FallbackRatePerKg is the nominal static rate in minor units per
	// kilogram used when no live quote is available.
	FallbackRatePerKg int64 = 1500

	// FallbackMinimumAmount is the floor of the static fallback price.
	FallbackMinimumAmount int64 = 1000

	gramsPerKilogram int64 = 1000
)

// ChargeableWeightGrams applies the minimum weight floor to a raw item
// weight sum.
func ChargeableWeightGrams(totalGrams int64) int64 {
	if totalGrams < MinChargeableWeightGrams {
		return MinChargeableWeightGrams
	}
	return totalGrams
}

// WeightKilograms converts grams to kilograms as an exact decimal.
func WeightKilograms(grams int64) decimal.Decimal {
	return decimal.NewFromInt(grams).Div(decimal.NewFromInt(gramsPerKilogram))
}

// StaticFallbackPrice computes the deterministic per-kilogram fallback price
// in minor units: max(FallbackMinimumAmount, ceil(weightKg * FallbackRatePerKg)).
// It guarantees checkout is never blocked by an unreachable rate API.
func StaticFallbackPrice(weightKg decimal.Decimal) int64 {
	amount := weightKg.Mul(decimal.NewFromInt(FallbackRatePerKg)).Ceil().IntPart()
	if amount < FallbackMinimumAmount {
		return FallbackMinimumAmount
	}
	return amount
}

// PerKilogramRate converts a total shipment price into a per-kilogram display
// rate, rounded to the nearest minor unit. A zero weight returns the total
// unmodified rather than dividing by zero.
func PerKilogramRate(totalAmount int64, weightKg decimal.Decimal) int64 {
	if weightKg.IsZero() {
		return totalAmount
	}
	return decimal.NewFromInt(totalAmount).Div(weightKg).Round(0).IntPart()
}
