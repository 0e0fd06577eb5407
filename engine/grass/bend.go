package grass

import "github.com/chewxy/math32"

// Host-side reference for the bending model the vertex stage executes on the
// GPU. The WGSL in assets/grass_vert.wgsl mirrors these functions; both sides
// must change together.

// interactionPushGain is the fixed gain applied on top of the interactor
// strength so even gentle interactors read clearly at meadow scale.
const interactionPushGain = 2.0

// InteractionPush accumulates the horizontal push the interactor snapshot
// exerts on one blade, plus the maximum single-interactor influence.
//
// Per interactor: horizontal influence h = (1 - dXZ/radius) squared inside
// the radius, vertical influence v fades from 1 at the blade base to 0 one
// blade height above it, and the push direction points from the interactor
// toward the blade. When the interactor sits exactly on the blade the
// direction degenerates, so a deterministic unit vector keyed by the blade
// position substitutes; it is stable frame to frame for the same blade.
//
// Parameters:
//   - bladePos: the blade root position in world space
//   - bladeHeight: the scaled blade height in world units
//   - interactors: the frame-fresh snapshot; zero-radius slots are skipped
//   - strength: the shared interactor push gain from settings
//
// Returns:
//   - [2]float32: the accumulated XZ push vector
//   - float32: the maximum influence across all interactors, clamped to 1
func InteractionPush(bladePos [3]float32, bladeHeight float32, interactors [MaxInteractors]GPUInteractor, strength float32) ([2]float32, float32) {
	var push [2]float32
	var maxInfluence float32

	for i := range interactors {
		radius := interactors[i].EffectiveRadius
		if radius <= 0 {
			continue
		}

		dx := bladePos[0] - interactors[i].Position[0]
		dz := bladePos[2] - interactors[i].Position[2]
		dXZ := math32.Hypot(dx, dz)
		if dXZ >= radius {
			continue
		}

		falloff := 1 - dXZ/radius
		h := falloff * falloff
		v := float32(1)
		if bladeHeight > 0 {
			v = 1 - clamp01((interactors[i].Position[1]-bladePos[1])/bladeHeight)
		}
		influence := h * v
		if influence <= 0 {
			continue
		}

		var dirX, dirZ float32
		if dXZ > 1e-4 {
			dirX = dx / dXZ
			dirZ = dz / dXZ
		} else {
			dirX, dirZ = hashDirection(bladePos)
		}

		push[0] += dirX * influence * strength * interactionPushGain
		push[1] += dirZ * influence * strength * interactionPushGain
		maxInfluence = math32.Max(maxInfluence, influence)
	}

	return push, clamp01(maxInfluence)
}

// WindAttenuation returns the factor applied to a blade's wind offset given
// the maximum interaction influence on it. Interaction locally overrides
// wind: a fully pressed blade ignores wind entirely.
//
// Parameters:
//   - maxInfluence: the maximum influence from InteractionPush
//
// Returns:
//   - float32: the wind attenuation factor in [0, 1]
func WindAttenuation(maxInfluence float32) float32 {
	return 1 - clamp01(maxInfluence)
}

// HashYaw returns the deterministic pseudo-random yaw in radians for a blade
// keyed by its horizontal position. Stable across frames, so a blade always
// faces the same way.
//
// Parameters:
//   - bladePos: the blade root position
//
// Returns:
//   - float32: the yaw angle in [0, 2 pi)
func HashYaw(bladePos [3]float32) float32 {
	return positionHash(bladePos) * 2 * math32.Pi
}

// hashDirection returns the deterministic unit vector substituted for the
// push direction when an interactor sits exactly on a blade.
func hashDirection(bladePos [3]float32) (float32, float32) {
	angle := HashYaw(bladePos)
	return math32.Cos(angle), math32.Sin(angle)
}

// positionHash maps a horizontal position to [0, 1) with the classic
// fract(sin(dot)) shader hash, matching the WGSL side.
func positionHash(bladePos [3]float32) float32 {
	v := math32.Sin(bladePos[0]*12.9898+bladePos[2]*78.233) * 43758.5453
	return v - math32.Floor(v)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
