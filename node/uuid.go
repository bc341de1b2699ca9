package node

import "fmt"

// GATT identifiers of the BlueST protocol.
const (
	featureCharFormat = "%08x-0001-11e1-ac36-0002a5d5c51b"

	DebugServiceUUID = "00000000-000e-11e1-9ab4-0002a5d5c51b"
	DebugTermUUID    = "00000001-000e-11e1-ac36-0002a5d5c51b"
	DebugStdErrUUID  = "00000002-000e-11e1-ac36-0002a5d5c51b"

	ConfigServiceUUID = "00000000-000f-11e1-9ab4-0002a5d5c51b"
	ConfigCharUUID    = "00000002-000f-11e1-ac36-0002a5d5c51b"
)

// FeatureCharUUID returns the characteristic exporting the features in mask.
func FeatureCharUUID(mask uint32) string {
	return fmt.Sprintf(featureCharFormat, mask)
}

// FeatureMaskOf returns the feature mask of a feature characteristic, false
// for any other UUID.
func FeatureMaskOf(uuid string) (uint32, bool) {
	var mask uint32
	if len(uuid) != 36 {
		return 0, false
	}
	if _, err := fmt.Sscanf(uuid[:8], "%08x", &mask); err != nil {
		return 0, false
	}
	if FeatureCharUUID(mask) != uuid {
		return 0, false
	}
	return mask, true
}
