package notify

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	err      error
	messages []string
}

func (stub *stubNotifier) Notify(title, message string) error {
	stub.messages = append(stub.messages, title+": "+message)
	return stub.err
}

func TestChain_FallsBack(t *testing.T) {
	broken := &stubNotifier{err: errors.New("no bus")}
	working := &stubNotifier{}

	chain := NewChain(zerolog.Nop(), nil, broken, working)
	require.NoError(t, chain.Notify("LofiTimer", "Break completed! Time to focus."))

	assert.Len(t, broken.messages, 1)
	assert.Equal(t, []string{"LofiTimer: Break completed! Time to focus."}, working.messages)
}

func TestChain_StopsAtFirstSuccess(t *testing.T) {
	first := &stubNotifier{}
	second := &stubNotifier{}

	require.NoError(t, NewChain(zerolog.Nop(), first, second).Notify("a", "b"))

	assert.Len(t, first.messages, 1)
	assert.Empty(t, second.messages)
}

func TestChain_AllFail(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	err := NewChain(zerolog.Nop(), &stubNotifier{err: errA}, &stubNotifier{err: errB}).Notify("t", "m")

	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestChain_Empty(t *testing.T) {
	assert.ErrorIs(t, NewChain(zerolog.Nop()).Notify("t", "m"), ErrUnavailable)
}

func TestFyne_NilApp(t *testing.T) {
	assert.ErrorIs(t, NewFyne(nil).Notify("t", "m"), ErrUnavailable)
}

func TestDisabled(t *testing.T) {
	assert.NoError(t, Disabled{}.Notify("t", "m"))
}
