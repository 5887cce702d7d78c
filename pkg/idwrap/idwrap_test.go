package idwrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidytodo/server/pkg/idwrap"
)

func TestTextRoundTrip(t *testing.T) {
	id := idwrap.NewNow()
	s := id.String()
	assert.Len(t, s, 26)

	parsed, err := idwrap.NewText(s)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Equal(t, 0, id.Compare(parsed))
}

func TestNewTextRejectsGarbage(t *testing.T) {
	_, err := idwrap.NewText("not-a-ulid")
	assert.Error(t, err)

	_, err = idwrap.NewText("")
	assert.Error(t, err)
}

func TestBytesRoundTrip(t *testing.T) {
	id := idwrap.NewNow()
	b := id.Bytes()
	assert.Len(t, b, 16)

	back, err := idwrap.NewFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestScanValue(t *testing.T) {
	id := idwrap.NewNow()
	v, err := id.Value()
	require.NoError(t, err)

	var scanned idwrap.IDWrap
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, id, scanned)

	assert.Error(t, scanned.Scan("wrong type"))
	assert.Error(t, scanned.Scan([]byte{1, 2, 3}))
}

func TestMarshalText(t *testing.T) {
	id := idwrap.NewNow()
	data, err := id.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, id.String(), string(data))

	var back idwrap.IDWrap
	require.NoError(t, back.UnmarshalText(data))
	assert.Equal(t, id, back)
}

func TestIsZero(t *testing.T) {
	var zero idwrap.IDWrap
	assert.True(t, zero.IsZero())
	assert.False(t, idwrap.NewNow().IsZero())
}

func TestTimeEmbedsCreation(t *testing.T) {
	id := idwrap.NewNow()
	assert.False(t, id.Time().IsZero())
}
