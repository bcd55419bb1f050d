// Package pricing prices a configured item: the topping allocator spends the
// free credits granted by default toppings, and Aggregate sums the result with
// the other panel selections.
package pricing

import "github.com/RandalBristow/pizza-palace-sub000/internal/model"

// Config holds the store-wide topping pricing switches.
type Config struct {
	// SwappableDefaultItems pools one free credit per default topping that any
	// topping can spend. When false, only the default topping itself is free.
	SwappableDefaultItems bool
	// HalfPriceToppings charges left/right placements at half price.
	HalfPriceToppings bool
}

func DefaultConfig() Config {
	return Config{SwappableDefaultItems: true, HalfPriceToppings: true}
}

// Topping is one selected topping as the allocator sees it.
type Topping struct {
	ToppingID string
	BasePrice float64
	Placement model.Placement
	Amount    model.Amount
}

type Input struct {
	Toppings []Topping
	Defaults []model.DefaultTopping
	// SizeID is the selected size, empty when none is chosen yet.
	SizeID string
	// Overrides maps size -> topping -> price.
	Overrides map[string]map[string]float64
}

// Charge is the priced outcome for one selected topping.
type Charge struct {
	ToppingID       string  `json:"topping_id"`
	Default         bool    `json:"default"`
	Units           int     `json:"units"`
	ChargeableUnits int     `json:"chargeable_units"`
	UnitPrice       float64 `json:"unit_price"`
	Multiplier      float64 `json:"multiplier"`
	Price           float64 `json:"price"`
}

// Allocation lists charges in the order the toppings were given.
type Allocation struct {
	Charges     []Charge `json:"charges"`
	FreeCredits int      `json:"free_credits"`
	CreditsUsed int      `json:"credits_used"`
	Total       float64  `json:"total"`
}

func Units(a model.Amount) int {
	if a == model.AmountExtra {
		return 2
	}
	return 1
}

// UnitPrice is the size override for the topping if one exists, else base.
func UnitPrice(toppingID string, base float64, sizeID string, overrides map[string]map[string]float64) float64 {
	if sizeID == "" {
		return base
	}
	if bySize, ok := overrides[sizeID]; ok {
		if price, ok := bySize[toppingID]; ok {
			return price
		}
	}
	return base
}

func (c Config) multiplier(p model.Placement) float64 {
	if c.HalfPriceToppings && p.IsHalf() {
		return 0.5
	}
	return 1
}

// Allocate prices the selected toppings. Default toppings are charged first
// against the free pool, then the rest in selection order.
func Allocate(in Input, cfg Config) Allocation {
	defaults := make(map[string]bool, len(in.Defaults))
	for _, d := range in.Defaults {
		defaults[d.ToppingID] = true
	}

	credits := 0
	if cfg.SwappableDefaultItems {
		credits = len(defaults)
	}

	out := Allocation{
		Charges:     make([]Charge, len(in.Toppings)),
		FreeCredits: credits,
	}

	var defaultIdx, otherIdx []int
	for i, t := range in.Toppings {
		if defaults[t.ToppingID] {
			defaultIdx = append(defaultIdx, i)
		} else {
			otherIdx = append(otherIdx, i)
		}
	}

	for _, i := range append(defaultIdx, otherIdx...) {
		t := in.Toppings[i]
		isDefault := defaults[t.ToppingID]
		units := Units(t.Amount)

		var chargeable int
		if cfg.SwappableDefaultItems {
			consumed := min(credits, units)
			credits -= consumed
			out.CreditsUsed += consumed
			chargeable = units - consumed
		} else {
			chargeable = units
			if isDefault {
				chargeable = units - 1
			}
		}

		unitPrice := UnitPrice(t.ToppingID, t.BasePrice, in.SizeID, in.Overrides)
		mult := cfg.multiplier(t.Placement)
		price := float64(chargeable) * unitPrice * mult

		out.Charges[i] = Charge{
			ToppingID:       t.ToppingID,
			Default:         isDefault,
			Units:           units,
			ChargeableUnits: chargeable,
			UnitPrice:       unitPrice,
			Multiplier:      mult,
			Price:           price,
		}
		out.Total += price
	}
	return out
}
