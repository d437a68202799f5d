package rpgerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndCode(t *testing.T) {
	err := New(CodeOutOfRange, "too far away")
	require.Error(t, err)
	assert.Equal(t, CodeOutOfRange, GetCode(err))
	assert.Equal(t, "too far away", err.Error())
}

func TestWrapPreservesCode(t *testing.T) {
	base := OutOfRange("beyond max range")
	wrapped := Wrap(base, "combat.ResolveAttack")

	assert.Equal(t, CodeOutOfRange, wrapped.Code)
	assert.True(t, errors.Is(wrapped, wrapped))
	assert.Contains(t, wrapped.Error(), "combat.ResolveAttack")
}

func TestWrapNonRpgerr(t *testing.T) {
	plain := errors.New("boom")
	wrapped := Wrap(plain, "something failed")
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped.Unwrap(), plain)
}

func TestWithMetaDoesNotMutateOriginal(t *testing.T) {
	base := New(CodeNotAllowed, "denied")
	withMeta := base.WithMeta("reason", "locked_door")

	assert.Nil(t, base.Meta)
	assert.Equal(t, "locked_door", withMeta.Meta["reason"])
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsContractViolation(ContractViolation("op", "Fighter")))
	assert.True(t, IsInvalidInput(InvalidInput("bad index")))
	assert.True(t, IsDeniedAction(Denied("locked")))
	assert.True(t, IsDeniedAction(OutOfRange("too far")))
	assert.True(t, IsDeniedAction(Blocked("wall")))
	assert.True(t, IsUnavailable(New(CodeUnavailable, "metrics down")))
	assert.False(t, IsDeniedAction(InvalidInput("bad")))
}

func TestGetCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, GetCode(errors.New("plain error")))
}
