package firmware

// CompatibilityTable lists the oldest board firmware releases that accept an
// upload over the debug console. An entry applies to every version with the
// same Name; when the entry has a McuType, the MCU must match as well.
type CompatibilityTable []Version

// DefaultCompatibility is the table used when none is configured.
var DefaultCompatibility = CompatibilityTable{
	{Name: "BLUEMICROSYSTEM2", Major: 2, Minor: 0, Patch: 1},
}

// Check returns a *NeedsUpdateError when v is older than the minimum listed
// for its firmware. Firmware not listed in the table is always accepted.
func (t CompatibilityTable) Check(v Version) error {
	for _, min := range t {
		if min.Name != v.Name {
			continue
		}
		if min.McuType != "" && min.McuType != v.McuType {
			continue
		}
		if v.Less(min) {
			return &NeedsUpdateError{Current: v, Minimum: min}
		}
	}
	return nil
}

// Minimum returns the entry that applies to v, if any.
func (t CompatibilityTable) Minimum(v Version) (Version, bool) {
	for _, min := range t {
		if min.Name == v.Name && (min.McuType == "" || min.McuType == v.McuType) {
			return min, true
		}
	}
	return Version{}, false
}
