package shared

// ResourceType identifies a transferable resource.
type ResourceType string

const (
	// ResourceEnergy is the base economic resource harvested from extraction nodes
	ResourceEnergy ResourceType = "ENERGY"

	// ResourceOre is the depletable mineral harvested by mineral extractors
	ResourceOre ResourceType = "ORE"

	// ResourceCompoundA is the first synthesis input compound
	ResourceCompoundA ResourceType = "COMPOUND_A"

	// ResourceCompoundB is the second synthesis input compound
	ResourceCompoundB ResourceType = "COMPOUND_B"

	// ResourceCompoundAB is the synthesis reaction product
	ResourceCompoundAB ResourceType = "COMPOUND_AB"
)

// TradableResources lists the resource types the exchange facility evaluates
// for market activity.
func TradableResources() []ResourceType {
	return []ResourceType{ResourceEnergy, ResourceOre, ResourceCompoundAB}
}
