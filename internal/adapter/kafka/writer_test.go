package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/meteo-archive-etl/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	ts := time.Date(1925, time.March, 4, 14, 30, 0, 0, time.UTC)
	tmax := 3.5
	rec := domain.Record{
		Station:   "Riga University",
		Timestamp: &ts,
		TMaxC:     &tmax,
	}

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)

	assert.Equal(t, []byte("Riga University"), msg.Key)
	assert.Contains(t, string(msg.Value), `"station":"Riga University"`)
	assert.Contains(t, string(msg.Value), `"t_max_c":3.5`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "station", msg.Headers[0].Key)
	assert.Equal(t, []byte("Riga University"), msg.Headers[0].Value)
	assert.Equal(t, "observed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("1925-03-04T14:30:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessageWithoutTimestamp(t *testing.T) {
	msg, err := serializeToMessage(domain.Record{Station: "liepaja_1925"})
	require.NoError(t, err)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "station", msg.Headers[0].Key)
	assert.NotContains(t, string(msg.Value), "timestamp")
}
