package grass

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleInteractor(pos [3]float32, radius float32) [MaxInteractors]GPUInteractor {
	var set [MaxInteractors]GPUInteractor
	set[0] = GPUInteractor{Position: pos, EffectiveRadius: radius}
	return set
}

func TestInteractionPushOutsideRadius(t *testing.T) {
	set := singleInteractor([3]float32{0, 0, 0}, 2)

	push, influence := InteractionPush([3]float32{5, 0, 0}, 1, set, 1)
	assert.Equal(t, [2]float32{0, 0}, push)
	assert.Equal(t, float32(0), influence)

	// Exactly on the radius counts as outside.
	push, influence = InteractionPush([3]float32{2, 0, 0}, 1, set, 1)
	assert.Equal(t, [2]float32{0, 0}, push)
	assert.Equal(t, float32(0), influence)
}

func TestInteractionPushDirectionPointsAway(t *testing.T) {
	set := singleInteractor([3]float32{0, 0, 0}, 4)

	push, influence := InteractionPush([3]float32{1, 0, 0}, 1, set, 1)
	assert.Greater(t, push[0], float32(0), "push must point from the interactor toward the blade")
	assert.InDelta(t, 0, push[1], 1e-6)
	assert.Greater(t, influence, float32(0))
	assert.LessOrEqual(t, influence, float32(1))
}

func TestInteractionPushQuadraticFalloff(t *testing.T) {
	set := singleInteractor([3]float32{0, 0, 0}, 4)

	_, near := InteractionPush([3]float32{1, 0, 0}, 1, set, 1)
	_, far := InteractionPush([3]float32{3, 0, 0}, 1, set, 1)
	assert.Greater(t, near, far)

	// h = (1 - d/r)^2 with full vertical influence at ground level.
	assert.InDelta(t, 0.5625, near, 1e-4)
	assert.InDelta(t, 0.0625, far, 1e-4)
}

func TestInteractionPushOnTopIsDeterministic(t *testing.T) {
	blade := [3]float32{3.7, 0, -1.2}
	set := singleInteractor(blade, 2)

	push1, influence := InteractionPush(blade, 1, set, 1)
	push2, _ := InteractionPush(blade, 1, set, 1)

	require.Equal(t, push1, push2, "degenerate direction must be stable across calls")
	assert.Equal(t, float32(1), influence, "zero distance at ground level is full influence")

	// Magnitude is influence * strength * gain with a unit direction.
	magnitude := math32.Hypot(push1[0], push1[1])
	assert.InDelta(t, interactionPushGain, magnitude, 1e-4)
	assert.False(t, math32.IsNaN(push1[0]) || math32.IsNaN(push1[1]))
}

func TestInteractionPushVerticalFade(t *testing.T) {
	// Interactor hovering one blade height above the root has no effect.
	set := singleInteractor([3]float32{0, 1, 0}, 4)
	_, atHeight := InteractionPush([3]float32{1, 0, 0}, 1, set, 1)
	assert.Equal(t, float32(0), atHeight)

	// Halfway up, influence is halved relative to ground level.
	set = singleInteractor([3]float32{0, 0.5, 0}, 4)
	_, half := InteractionPush([3]float32{1, 0, 0}, 1, set, 1)
	set = singleInteractor([3]float32{0, 0, 0}, 4)
	_, full := InteractionPush([3]float32{1, 0, 0}, 1, set, 1)
	assert.InDelta(t, full/2, half, 1e-4)
}

func TestInteractionPushAccumulatesAcrossInteractors(t *testing.T) {
	var set [MaxInteractors]GPUInteractor
	set[0] = GPUInteractor{Position: [3]float32{-1, 0, 0}, EffectiveRadius: 4}
	set[1] = GPUInteractor{Position: [3]float32{1, 0, 0}, EffectiveRadius: 4}

	// Symmetric interactors cancel horizontally at the midpoint.
	push, influence := InteractionPush([3]float32{0, 0, 0}, 1, set, 1)
	assert.InDelta(t, 0, push[0], 1e-5)
	assert.InDelta(t, 0, push[1], 1e-5)
	assert.Greater(t, influence, float32(0))
}

func TestWindAttenuation(t *testing.T) {
	assert.Equal(t, float32(1), WindAttenuation(0))
	assert.Equal(t, float32(0), WindAttenuation(1))
	assert.Equal(t, float32(0), WindAttenuation(2.5), "influence above 1 clamps")
	assert.InDelta(t, 0.75, WindAttenuation(0.25), 1e-6)
}

func TestHashYawStableAndBounded(t *testing.T) {
	pos := [3]float32{12.5, 0, -7.25}
	yaw := HashYaw(pos)
	assert.Equal(t, yaw, HashYaw(pos))
	assert.GreaterOrEqual(t, yaw, float32(0))
	assert.Less(t, yaw, 2*math32.Pi)

	other := HashYaw([3]float32{12.6, 0, -7.25})
	assert.NotEqual(t, yaw, other)
}
