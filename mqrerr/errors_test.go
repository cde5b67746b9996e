package mqrerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidEnvelopeMessage(t *testing.T) {
	err := InvalidEnvelope(5, 0, 0, 5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid envelope")
}

func TestInvalidKMessage(t *testing.T) {
	err := InvalidK(-3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "-3")
}

func TestNilPayloadIsSentinel(t *testing.T) {
	require.Equal(t, NilPayload, NilPayload)
	require.Error(t, NilPayload)
}

func TestWrapPassesThroughNil(t *testing.T) {
	require.NoError(t, Wrap(nil, "context"))
}

func TestWrapAddsContext(t *testing.T) {
	err := Wrap(NilPayload, "inserting leaf")
	require.Error(t, err)
	require.Contains(t, err.Error(), "inserting leaf")
	require.Contains(t, err.Error(), "nil payload")
}

func TestIterationCapExceededMessage(t *testing.T) {
	err := IterationCapExceeded(50000)
	require.Error(t, err)
	require.Contains(t, err.Error(), "50000")
}
