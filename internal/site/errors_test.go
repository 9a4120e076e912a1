package site

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageError(t *testing.T) {
	err := stageErr(StageLoadProfile, ErrDataLoad, "profile.json", fs.ErrNotExist)

	assert.True(t, errors.Is(err, ErrDataLoad))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrTemplate))
	assert.Equal(t, "LOAD_PROFILE: data load failed (profile.json): file does not exist", err.Error())

	var se *StageError
	require.True(t, errors.As(error(err), &se))
	assert.Equal(t, StageLoadProfile, se.Stage)
}

func TestStageError_NoPath(t *testing.T) {
	err := stageErr(StagePromote, ErrWrite, "", nil)
	assert.Equal(t, "PROMOTE: write failed", err.Error())
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"":        ModeDefault,
		"default": ModeDefault,
		"dev":     ModeDev,
		"prod":    ModeProd,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("staging")
	assert.ErrorContains(t, err, `unknown build mode "staging"`)
}

func TestStagesOrder(t *testing.T) {
	require.Len(t, Stages, 12)
	assert.Equal(t, StageInit, Stages[0])
	assert.Equal(t, StageDone, Stages[len(Stages)-1])
}
