package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RejectsUnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database dialect")
}

func TestOpen_PureGoSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wa.db")
	container, err := Open(context.Background(), "sqlite", "file:"+path+"?_pragma=foreign_keys(1)", zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()

	device, err := container.GetFirstDevice(context.Background())
	require.NoError(t, err)
	assert.Nil(t, device.ID, "a fresh store holds an unpaired device")
}
