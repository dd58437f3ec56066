package container_test

import (
	"bytes"
	"testing"

	"github.com/0xAbby/ByteCraft/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := &container.Module{
		EntryPoint: 4,
		Code:       []byte{0x01, 0x02, 0x03, 0x04},
		Data:       []byte{0xaa, 0xbb, 0xcc},
	}

	var buf bytes.Buffer
	require.NoError(t, container.Save(&buf, m))

	got, err := container.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.EntryPoint, got.EntryPoint)
	assert.Equal(t, m.Code, got.Code)
	assert.Equal(t, m.Data, got.Data)
}

func TestSaveEmptyModule(t *testing.T) {
	m := container.NewModule(0, nil, 0)

	var buf bytes.Buffer
	require.NoError(t, container.Save(&buf, m))
	assert.Equal(t, 16, buf.Len(), "header-only file for an empty module")

	got, err := container.Load(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Code)
	assert.Empty(t, got.Data)
}

func TestLoadBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("nope")
	_, err := container.Load(buf)
	require.Error(t, err)
	var cerr *container.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, container.KindBadMagic, cerr.Kind)
}

func TestLoadTruncatedHeader(t *testing.T) {
	buf := bytes.NewBuffer(append(container.Magic[:], 0x01, 0x02))
	_, err := container.Load(buf)
	require.Error(t, err)
	var cerr *container.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, container.KindTruncatedHeader, cerr.Kind)
}

func TestLoadTruncatedPayload(t *testing.T) {
	m := &container.Module{EntryPoint: 0, Code: []byte{1, 2, 3, 4}, Data: []byte{5, 6}}
	var buf bytes.Buffer
	require.NoError(t, container.Save(&buf, m))

	truncated := bytes.NewBuffer(buf.Bytes()[:buf.Len()-1])
	_, err := container.Load(truncated)
	require.Error(t, err)
	var cerr *container.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, container.KindTruncatedPayload, cerr.Kind)
}

func TestLoadToleratesTrailingBytes(t *testing.T) {
	m := &container.Module{EntryPoint: 0, Code: []byte{1, 2}, Data: nil}
	var buf bytes.Buffer
	require.NoError(t, container.Save(&buf, m))
	buf.Write([]byte{0xff, 0xff, 0xff})

	got, err := container.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Code, got.Code)
}
