// ABOUTME: Lighting, particle, and post-processing handlers
// ABOUTME: Lights and emitters are registry objects carrying typed components

package dispatch

import (
	"fmt"
	"strings"

	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func (d *Dispatcher) handleCreateLight(raw string) (interface{}, error) {
	var p createLightParams
	if err := decodeParams("create_light", raw, &p); err != nil {
		return nil, err
	}
	col, err := color("create_light", "color", p.Color)
	if err != nil {
		return nil, err
	}

	lightType := strings.ToLower(defaultString(p.LightType, "point"))
	switch lightType {
	case "directional", "point", "spot":
	default:
		return nil, errors.NewInvalidField("lightType", "create_light", "expected directional, point, or spot")
	}

	obj := d.registry.Create(&scene.Object{
		Type:     "LIGHT",
		Position: vec3(p.Position),
		Scale:    scene.Vector3{1, 1, 1},
		Active:   true,
		Light: &scene.Light{
			LightType:      lightType,
			Intensity:      defaultFloat(p.Intensity, 1),
			Range:          defaultFloat(p.Range, 10),
			SpotAngle:      defaultFloat(p.SpotAngle, 30),
			Shadows:        boolOr(p.Shadows, true),
			ShadowStrength: defaultFloat(p.ShadowStrength, 0.8),
			Color:          col,
		},
	})
	return objectResult(obj), nil
}

func (d *Dispatcher) handleCreateParticleSystem(raw string) (interface{}, error) {
	var p createParticleSystemParams
	if err := decodeParams("create_particle_system", raw, &p); err != nil {
		return nil, err
	}
	if _, err := color("create_particle_system", "startColor", p.StartColor); err != nil {
		return nil, err
	}

	effect := strings.ToLower(defaultString(p.EffectType, "fire"))
	s := defaultFloat(p.Scale, 1)
	obj := d.registry.Create(&scene.Object{
		Type:     "PARTICLES_" + strings.ToUpper(effect),
		Position: vec3(p.Position),
		Scale:    scene.Vector3{s, s, s},
		Active:   true,
	})
	return objectResult(obj), nil
}

func (d *Dispatcher) handleSetPostProcessing(raw string) (interface{}, error) {
	var p postProcessingParams
	if err := decodeParams("set_post_processing", raw, &p); err != nil {
		return nil, err
	}
	if p.Effect == "" {
		return nil, errors.NewMissingField("effect", "set_post_processing")
	}

	intensity := defaultFloat(p.Intensity, 1)
	d.registry.SetEnvironment(func(env *scene.Environment) {
		env.PostEffects[strings.ToLower(p.Effect)] = intensity
	})
	return MessageResult{
		Success: true,
		Message: fmt.Sprintf("Post-processing effect %s set to %g", p.Effect, intensity),
	}, nil
}
