package kernel_test

import (
	"math"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{name: "valid point", latitude: 13.7563, longitude: 100.5018},
		{name: "poles and antimeridian", latitude: 90, longitude: -180},
		{name: "latitude too small", latitude: -90.01, longitude: 0, wantErr: true},
		{name: "latitude too large", latitude: 90.01, longitude: 0, wantErr: true},
		{name: "longitude too large", latitude: 0, longitude: 180.5, wantErr: true},
		{name: "NaN latitude", latitude: math.NaN(), longitude: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.latitude, tt.longitude)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				require.Error(t, p.Validate())
				return
			}
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.InDelta(t, tt.latitude, p.Latitude(), 1e-9)
			assert.InDelta(t, tt.longitude, p.Longitude(), 1e-9)
		})
	}

	t.Run("reports both coordinates at once", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	bangkok, _ := kernel.NewGeoPoint(13.7563, 100.5018)
	chiangMai, _ := kernel.NewGeoPoint(18.7883, 98.9853)

	t.Run("zero for identical points", func(t *testing.T) {
		d, err := bangkok.DistanceKm(bangkok)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab, err := bangkok.DistanceKm(chiangMai)
		require.NoError(t, err)
		ba, err := chiangMai.DistanceKm(bangkok)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
		assert.InDelta(t, 582, ab, 5)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(1, 0)

		d, err := a.DistanceKm(b)

		require.NoError(t, err)
		assert.InDelta(t, 111.19, d, 0.01)
	})

	t.Run("zero value point fails", func(t *testing.T) {
		var unknown kernel.GeoPoint

		_, err := bangkok.DistanceKm(unknown)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
