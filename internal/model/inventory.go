package model

import "github.com/google/uuid"

// ExplosiveProduct is a stocked explosive with its measured density and price.
type ExplosiveProduct struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Type       ExplosiveType `json:"type"`
	Density    float64       `json:"density"`      // g/cm³
	PricePerKg float64       `json:"price_per_kg"` // currency units per kg
}

// NewExplosiveProduct creates a new ExplosiveProduct with a generated ID.
func NewExplosiveProduct(name string, t ExplosiveType, density, pricePerKg float64) ExplosiveProduct {
	return ExplosiveProduct{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Type:       t,
		Density:    density,
		PricePerKg: pricePerKg,
	}
}

// ApplyToInputs selects this product for a design, overriding the
// recommendation and the nominal density.
func (p ExplosiveProduct) ApplyToInputs(in *BlastDesignInputs) {
	in.AutoExplosive = false
	in.Explosive = p.Type
	in.DensityOverride = p.Density
}

// Cost returns the price of the given explosive mass.
func (p ExplosiveProduct) Cost(kg float64) float64 {
	return kg * p.PricePerKg
}

// DrillBit is a drill bit preset.
type DrillBit struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DiameterMM float64 `json:"diameter_mm"`
}

// NewDrillBit creates a new DrillBit with a generated ID.
func NewDrillBit(name string, diameterMM float64) DrillBit {
	return DrillBit{
		ID:         uuid.New().String()[:8],
		Name:       name,
		DiameterMM: diameterMM,
	}
}

// ApplyToInputs sets the hole diameter of a design to this bit's diameter.
func (b DrillBit) ApplyToInputs(in *BlastDesignInputs) {
	in.HoleDiameterMM = b.DiameterMM
}

// Inventory holds the user's explosive products and drill bit presets.
type Inventory struct {
	Explosives []ExplosiveProduct `json:"explosives"`
	Bits       []DrillBit         `json:"bits"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Explosives: []ExplosiveProduct{
			NewExplosiveProduct("ANFO (bulk)", ANFO, 0.85, 0.9),
			NewExplosiveProduct("Heavy ANFO 60:40", HeavyANFO, 1.225, 1.3),
			NewExplosiveProduct("Water gel slurry", Slurry, 1.175, 1.8),
			NewExplosiveProduct("Bulk emulsion", Emulsion, 1.3, 2.2),
		},
		Bits: []DrillBit{
			NewDrillBit("89mm button bit", 89),
			NewDrillBit("102mm button bit", 102),
			NewDrillBit("115mm DTH bit", 115),
			NewDrillBit("152mm DTH bit", 152),
			NewDrillBit("200mm tricone", 200),
			NewDrillBit("251mm tricone", 251),
			NewDrillBit("311mm tricone", 311),
		},
	}
}

// FindExplosiveByID returns a pointer to the product with the given ID, or nil.
func (inv *Inventory) FindExplosiveByID(id string) *ExplosiveProduct {
	for i := range inv.Explosives {
		if inv.Explosives[i].ID == id {
			return &inv.Explosives[i]
		}
	}
	return nil
}

// FindBitByID returns a pointer to the bit with the given ID, or nil.
func (inv *Inventory) FindBitByID(id string) *DrillBit {
	for i := range inv.Bits {
		if inv.Bits[i].ID == id {
			return &inv.Bits[i]
		}
	}
	return nil
}

// FindExplosiveByName returns a pointer to the first product with the given name, or nil.
func (inv *Inventory) FindExplosiveByName(name string) *ExplosiveProduct {
	for i := range inv.Explosives {
		if inv.Explosives[i].Name == name {
			return &inv.Explosives[i]
		}
	}
	return nil
}

// FindBitByName returns a pointer to the first bit with the given name, or nil.
func (inv *Inventory) FindBitByName(name string) *DrillBit {
	for i := range inv.Bits {
		if inv.Bits[i].Name == name {
			return &inv.Bits[i]
		}
	}
	return nil
}

// ProductForType returns the first stocked product of the given type, or nil.
func (inv *Inventory) ProductForType(t ExplosiveType) *ExplosiveProduct {
	for i := range inv.Explosives {
		if inv.Explosives[i].Type == t {
			return &inv.Explosives[i]
		}
	}
	return nil
}

// ExplosiveNames returns the product names in inventory order.
func (inv *Inventory) ExplosiveNames() []string {
	names := make([]string, len(inv.Explosives))
	for i, p := range inv.Explosives {
		names[i] = p.Name
	}
	return names
}

// BitNames returns the bit names in inventory order.
func (inv *Inventory) BitNames() []string {
	names := make([]string, len(inv.Bits))
	for i, b := range inv.Bits {
		names[i] = b.Name
	}
	return names
}
