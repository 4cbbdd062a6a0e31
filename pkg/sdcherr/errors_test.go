package sdcherr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"sdch/pkg/sdcherr"
)

func TestNewSetsConventionalStatus(t *testing.T) {
	cases := []struct {
		kind   sdcherr.Kind
		status int
	}{
		{sdcherr.UnsupportedFormat, 400},
		{sdcherr.Oversize, 400},
		{sdcherr.DocumentNotFound, 404},
		{sdcherr.DocumentNotReady, 409},
		{sdcherr.EmptyQuery, 422},
		{sdcherr.Cancelled, 499},
		{sdcherr.EmbedderUnavailable, 500},
	}
	for _, c := range cases {
		err := sdcherr.New(c.kind, "boom", nil)
		assert.Equal(t, c.status, err.Status)
		assert.Equal(t, c.kind, err.Kind)
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := sdcherr.New(sdcherr.StoreError, "write failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}

func TestAsExtractsSdchError(t *testing.T) {
	err := sdcherr.New(sdcherr.DocumentNotFound, "no such document", nil)

	se, ok := sdcherr.As(err)
	assert.True(t, ok)
	assert.Equal(t, sdcherr.DocumentNotFound, se.Kind)

	_, ok = sdcherr.As(errors.New("plain error"))
	assert.False(t, ok)
}
