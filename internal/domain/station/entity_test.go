//go:build unit

package station_test

import (
	"testing"

	"github.com/JulianHBuecher/ev-server/internal/domain/station"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStation() *station.ChargingStation {
	return &station.ChargingStation{
		ID:         "CS-001",
		SiteAreaID: "SITE-AREA-1",
		Connectors: []station.Connector{
			{ID: 1, Status: station.ConnectorAvailable},
			{ID: 2, Status: station.ConnectorAvailable},
		},
	}
}

func TestConnectorLookup(t *testing.T) {
	st := newStation()

	c, err := st.Connector(2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ID)

	_, err = st.Connector(3)
	assert.ErrorIs(t, err, station.ErrConnectorNotFound)
}

func TestConnectorBindingState(t *testing.T) {
	id := 100

	t.Run("unbound connector", func(t *testing.T) {
		c := station.Connector{ID: 1, Status: station.ConnectorAvailable}
		assert.False(t, c.IsBound())
		assert.False(t, c.IsBoundTo(id))
	})

	t.Run("bound connector answers only for its own reservation", func(t *testing.T) {
		c := station.Connector{ID: 1, Status: station.ConnectorReserved, ReservationID: &id}
		assert.True(t, c.IsBound())
		assert.True(t, c.IsBoundTo(100))
		assert.False(t, c.IsBoundTo(200))
	})
}
