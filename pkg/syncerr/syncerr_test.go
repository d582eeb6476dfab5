// pkg/syncerr/syncerr_test.go

package syncerr

import (
	"errors"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedErrorClassification(t *testing.T) {
	err := Expectedf("bad flag value %q", "x")
	assert.True(t, IsExpectedUserError(err))

	// Classification survives wrapping.
	wrapped := cerr.Wrap(err, "running command")
	assert.True(t, IsExpectedUserError(wrapped))

	assert.False(t, IsExpectedUserError(errors.New("store unreachable")))
	assert.False(t, IsExpectedUserError(nil))
}

func TestNewExpectedErrorNil(t *testing.T) {
	assert.Nil(t, NewExpectedError(nil))
}

func TestWrapStorePreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapStore(cause, "listing ports")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "listing ports")

	assert.Nil(t, WrapStore(nil, "listing ports"))
}

func TestWithHint(t *testing.T) {
	cause := errors.New("no config file")
	err := WithHint(cause, "create /etc/fabricsync/fabricsync.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))

	assert.Nil(t, WithHint(nil, "unused"))
}
