// ABOUTME: Environment handlers: terrain, water, vegetation, skybox
// ABOUTME: Environment objects are flat primitives scaled to the requested size

package dispatch

import (
	"strings"

	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func (d *Dispatcher) handleCreateTerrain(raw string) (interface{}, error) {
	var p createTerrainParams
	if err := decodeParams("create_terrain", raw, &p); err != nil {
		return nil, err
	}
	if p.Width <= 0 || p.Length <= 0 {
		return nil, errors.NewInvalidField("width/length", "create_terrain", "must be positive")
	}

	obj := d.registry.Create(&scene.Object{
		Type:   "TERRAIN",
		Scale:  scene.Vector3{p.Width, defaultFloat(p.Height, 100), p.Length},
		Active: true,
	})
	return objectResult(obj), nil
}

func (d *Dispatcher) handleCreateWater(raw string) (interface{}, error) {
	var p createWaterParams
	if err := decodeParams("create_water", raw, &p); err != nil {
		return nil, err
	}
	if p.Width <= 0 || p.Length <= 0 {
		return nil, errors.NewInvalidField("width/length", "create_water", "must be positive")
	}

	obj := d.registry.Create(&scene.Object{
		Type:     "WATER",
		Position: scene.Vector3{0, p.Height, 0},
		Scale:    scene.Vector3{p.Width, 1, p.Length},
		Active:   true,
	})
	return objectResult(obj), nil
}

func (d *Dispatcher) handleCreateVegetation(raw string) (interface{}, error) {
	var p createVegetationParams
	if err := decodeParams("create_vegetation", raw, &p); err != nil {
		return nil, err
	}
	if p.Type == "" {
		return nil, errors.NewMissingField("type", "create_vegetation")
	}
	col, err := color("create_vegetation", "color", p.Color)
	if err != nil {
		return nil, err
	}

	s := defaultFloat(p.Scale, 1)
	obj := &scene.Object{
		Type:     strings.ToUpper(p.Type),
		Position: vec3(p.Position),
		Scale:    scene.Vector3{s, s, s},
		Active:   true,
	}
	if col != nil {
		obj.Material = &scene.Material{Name: "Vegetation_" + p.Type, Color: col}
	}
	return objectResult(d.registry.Create(obj)), nil
}

func (d *Dispatcher) handleCreateSkybox(raw string) (interface{}, error) {
	var p createSkyboxParams
	if err := decodeParams("create_skybox", raw, &p); err != nil {
		return nil, err
	}
	if p.Type == "" {
		return nil, errors.NewMissingField("type", "create_skybox")
	}
	col, err := color("create_skybox", "color", p.Color)
	if err != nil {
		return nil, err
	}

	d.registry.SetEnvironment(func(env *scene.Environment) {
		env.Skybox = p.Type
		env.SkyColor = col
	})
	return MessageResult{Success: true, Message: "Skybox set to " + p.Type}, nil
}
