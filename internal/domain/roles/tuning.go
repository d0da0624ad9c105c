package roles

// Tuning holds the role behavior thresholds. Values are configuration, not
// code: the daemon loads them from the simulation config section.
type Tuning struct {
	// BufferHighFill is the fill fraction above which a buffer becomes a
	// first-priority collection target
	BufferHighFill float64

	// MinDroppedAmount is the smallest dropped pile worth a pickup trip
	MinDroppedAmount int

	// StorageEmergencyLevel enables emergency draw-down from central
	// storage once its energy exceeds this amount
	StorageEmergencyLevel int

	// TowerReserve is the energy level below which defensive facilities
	// become delivery targets
	TowerReserve int

	// BufferRepairFraction triggers extractor buffer repair below it
	BufferRepairFraction float64

	// UpgradeRange is the working range to the controller
	UpgradeRange int

	// BuildRange is the working range to a construction order
	BuildRange int
}

// DefaultTuning returns the standard thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		BufferHighFill:        0.5,
		MinDroppedAmount:      50,
		StorageEmergencyLevel: 10000,
		TowerReserve:          500,
		BufferRepairFraction:  0.9,
		UpgradeRange:          3,
		BuildRange:            3,
	}
}
