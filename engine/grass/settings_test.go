package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/material"
)

func validTestSettings(opts ...SettingsBuilderOption) Settings {
	base := []SettingsBuilderOption{
		WithGeometry(NewProceduralBladeGeometry(4)),
		WithMaterial(material.NewMaterial()),
		WithCullShader(NewCullShader()),
	}
	return NewSettings(append(base, opts...)...)
}

func TestSettingsDefaults(t *testing.T) {
	s := validTestSettings()

	assert.Equal(t, float32(0.06), s.MinWidth())
	assert.Equal(t, float32(0.14), s.MaxWidth())
	assert.Equal(t, float32(0.5), s.MinHeight())
	assert.Equal(t, float32(1.2), s.MaxHeight())
	assert.Equal(t, float32(40), s.MinFadeDistance())
	assert.Equal(t, float32(80), s.MaxDrawDistance())
	assert.Equal(t, 16, s.MaxInteractors())
	assert.True(t, s.CastShadows())

	ok, reason := Validate(s)
	assert.True(t, ok, reason)
}

func TestValidateRejectsBadConfigurations(t *testing.T) {
	cases := []struct {
		name string
		s    Settings
	}{
		{"nil settings", nil},
		{"missing geometry", NewSettings(WithMaterial(material.NewMaterial()), WithCullShader(NewCullShader()))},
		{"missing material", NewSettings(WithGeometry(NewProceduralBladeGeometry(4)), WithCullShader(NewCullShader()))},
		{"missing cull shader", NewSettings(WithGeometry(NewProceduralBladeGeometry(4)), WithMaterial(material.NewMaterial()))},
		{"width min above max", validTestSettings(WithWidthRange(0.5, 0.1))},
		{"height min above max", validTestSettings(WithHeightRange(2, 1))},
		{"fade at or beyond draw distance", validTestSettings(WithDrawDistances(80, 80))},
		{"zero interactor slots", validTestSettings(WithMaxInteractors(0))},
		{"too many interactor slots", validTestSettings(WithMaxInteractors(17))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := Validate(tc.s)
			assert.False(t, ok)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestSettingsBuilderOverrides(t *testing.T) {
	s := validTestSettings(
		WithWind(2, 0.5, 1.1),
		WithDrawDistances(10, 30),
		WithInteractorStrength(0.7),
		WithCastShadows(false),
	)

	require.Equal(t, float32(2), s.WindSpeed())
	require.Equal(t, float32(0.5), s.WindStrength())
	require.Equal(t, float32(1.1), s.WindFrequency())
	assert.Equal(t, float32(10), s.MinFadeDistance())
	assert.Equal(t, float32(30), s.MaxDrawDistance())
	assert.Equal(t, float32(0.7), s.InteractorStrength())
	assert.False(t, s.CastShadows())
}
