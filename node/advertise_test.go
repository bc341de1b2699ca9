package node

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdvertise(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    Advertise
		wantErr bool
	}{
		{
			name: "nucleo with mac",
			data: []byte{0x01, 0x80, 0x00, 0xE0, 0x04, 0x00, 0xC0, 0x12, 0x34, 0x56, 0x78, 0x9A},
			want: Advertise{
				Version: 0x01, DeviceID: 0x80, Model: Nucleo, FeatureMask: 0x00E00400,
				Address: net.HardwareAddr{0xC0, 0x12, 0x34, 0x56, 0x78, 0x9A},
			},
		},
		{
			name: "sensor tile",
			data: []byte{0x01, 0x02, 0x00, 0x00, 0x04, 0x00},
			want: Advertise{Version: 0x01, DeviceID: 0x02, Model: SensorTile, FeatureMask: 0x400},
		},
		{name: "wrong version", data: []byte{0x02, 0x02, 0, 0, 0, 0}, wantErr: true},
		{name: "wrong length", data: []byte{0x01, 0x02, 0, 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAdvertise(tt.data)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrNotBlueST))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseManufacturerData(t *testing.T) {
	adv, err := ParseManufacturerData(0x0301, []byte{0x00, 0x00, 0x04, 0x00})
	require.NoError(t, err)
	assert.Equal(t, BlueCoin, adv.Model)
	assert.True(t, adv.HasFeature(0x400))
	assert.False(t, adv.HasFeature(0x800))
}

func TestModelFromDeviceID(t *testing.T) {
	assert.Equal(t, Generic, ModelFromDeviceID(0x00))
	assert.Equal(t, STEVALWESU1, ModelFromDeviceID(0x01))
	assert.Equal(t, SensorTile, ModelFromDeviceID(0x02))
	assert.Equal(t, BlueCoin, ModelFromDeviceID(0x03))
	assert.Equal(t, Generic, ModelFromDeviceID(0x04))
	assert.Equal(t, Nucleo, ModelFromDeviceID(0x80))
	assert.Equal(t, Nucleo, ModelFromDeviceID(0x81))
	assert.Equal(t, "NUCLEO", Nucleo.String())
}

func TestBuildCommand(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x00, 0x04, 0x00, 'o', 0x01}, BuildCommand(0x400, 'o', []byte{0x01}))
}

func TestParseCommandResponse(t *testing.T) {
	resp, err := ParseCommandResponse([]byte{0x34, 0x12, 0x00, 0x00, 0x04, 0x00, 't', 0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, CommandResponse{Timestamp: 0x1234, Mask: 0x400, Type: 't', Data: []byte{0x01, 0x02}}, resp)

	resp, err = ParseCommandResponse([]byte{0x00, 0x00, 0x00, 0x00, 0x04, 0x00, 't'})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestTimestamps(t *testing.T) {
	var ts Timestamps
	assert.Equal(t, uint64(100), ts.Next(100))
	assert.Equal(t, uint64(90), ts.Next(90), "small step back is not a rollover")
	assert.Equal(t, uint64(0xFFFE), ts.Next(0xFFFE))
	assert.Equal(t, uint64(0x10001), ts.Next(0x0001))
	assert.Equal(t, uint64(0x18000), ts.Next(0x8000))
}

func TestFeatureCharUUID(t *testing.T) {
	assert.Equal(t, "00000400-0001-11e1-ac36-0002a5d5c51b", FeatureCharUUID(0x400))

	mask, ok := FeatureMaskOf("00e00000-0001-11e1-ac36-0002a5d5c51b")
	assert.True(t, ok)
	assert.Equal(t, uint32(0x00E00000), mask)

	_, ok = FeatureMaskOf(DebugTermUUID)
	assert.False(t, ok)
	_, ok = FeatureMaskOf("short")
	assert.False(t, ok)
}
