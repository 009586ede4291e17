// ABOUTME: Character and vehicle handlers, including the improved/lego variants
// ABOUTME: Characters and vehicles are registry objects with typed components

package dispatch

import (
	"fmt"
	"strings"

	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func (d *Dispatcher) handleCreateCharacter(raw string) (interface{}, error) {
	var p createCharacterParams
	if err := decodeParams("create_character", raw, &p); err != nil {
		return nil, err
	}
	if p.CharacterType == "" {
		return nil, errors.NewMissingField("character_type", "create_character")
	}

	obj := d.registry.Create(&scene.Object{
		Type:     "CHARACTER_" + strings.ToUpper(p.CharacterType),
		Position: vec3(p.Position),
		Scale:    scene.Vector3{1, 1, 1},
		Active:   true,
	})
	return objectResult(obj), nil
}

func (d *Dispatcher) handleImprovedCharacter(raw string) (interface{}, error) {
	var p improvedCharacterParams
	if err := decodeParams("improved_character", raw, &p); err != nil {
		return nil, err
	}
	if p.CharacterType == "" {
		return nil, errors.NewMissingField("characterType", "improved_character")
	}
	skin, err := color("improved_character", "skinColor", p.SkinColor)
	if err != nil {
		return nil, err
	}
	if _, err := color("improved_character", "hairColor", p.HairColor); err != nil {
		return nil, err
	}

	height := defaultFloat(p.Height, 1.8)
	obj := &scene.Object{
		Type:     "CHARACTER_" + strings.ToUpper(p.CharacterType),
		Position: vec3(p.Position),
		Scale:    scene.Vector3{1, height / 1.8, 1},
		Active:   true,
	}
	if skin != nil {
		obj.Material = &scene.Material{Name: "Skin", Color: skin}
	}
	return objectResult(d.registry.Create(obj)), nil
}

func (d *Dispatcher) handleLegoCharacter(raw string) (interface{}, error) {
	var p legoCharacterParams
	if err := decodeParams("create_lego_character", raw, &p); err != nil {
		return nil, err
	}
	if p.CharacterType == "" {
		return nil, errors.NewMissingField("characterType", "create_lego_character")
	}
	body, err := color("create_lego_character", "bodyColor", p.BodyColor)
	if err != nil {
		return nil, err
	}
	if _, err := color("create_lego_character", "headColor", p.HeadColor); err != nil {
		return nil, err
	}

	obj := &scene.Object{
		Type:     "LEGO_" + strings.ToUpper(p.CharacterType),
		Position: vec3(p.Position),
		Scale:    scene.Vector3{1, 1, 1},
		Active:   true,
	}
	if body != nil {
		obj.Material = &scene.Material{Name: "LegoBody", Color: body}
	}
	return objectResult(d.registry.Create(obj)), nil
}

func (d *Dispatcher) handleSetAnimation(raw string) (interface{}, error) {
	var p setAnimationParams
	if err := decodeParams("set_animation", raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.NewMissingField("name", "set_animation")
	}
	if p.Animation == "" {
		return nil, errors.NewMissingField("animation", "set_animation")
	}

	obj, err := d.registry.Update(p.Name, func(o *scene.Object) error {
		o.Animation = p.Animation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objectResult(obj), nil
}

func (d *Dispatcher) handleCharacterController(raw string) (interface{}, error) {
	var p characterControllerParams
	if err := decodeParams("set_character_controller", raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.NewMissingField("name", "set_character_controller")
	}

	speed := defaultFloat(p.Speed, 5)
	jump := defaultFloat(p.JumpHeight, 2)
	obj, err := d.registry.Update(p.Name, func(o *scene.Object) error {
		// The controller rides on the rigidbody component.
		if o.Rigidbody == nil {
			o.Rigidbody = &scene.Rigidbody{Mass: 1, UseGravity: true}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return MessageResult{
		Success: true,
		Message: fmt.Sprintf("Controller attached to %s (speed=%g, jump_height=%g)", obj.Name, speed, jump),
	}, nil
}

func (d *Dispatcher) handleCreateVehicle(raw string) (interface{}, error) {
	var p createVehicleParams
	if err := decodeParams("create_vehicle", raw, &p); err != nil {
		return nil, err
	}
	if p.VehicleType == "" {
		return nil, errors.NewMissingField("vehicle_type", "create_vehicle")
	}
	col, err := color("create_vehicle", "color", p.Color)
	if err != nil {
		return nil, err
	}

	obj := &scene.Object{
		Type:      "VEHICLE_" + strings.ToUpper(p.VehicleType),
		Position:  vec3(p.Position),
		Scale:     scene.Vector3{1, 1, 1},
		Active:    true,
		Rigidbody: &scene.Rigidbody{Mass: 1000, UseGravity: true},
	}
	if col != nil {
		obj.Material = &scene.Material{Name: "VehiclePaint", Color: col}
	}
	return objectResult(d.registry.Create(obj)), nil
}

func (d *Dispatcher) handleVehicleProperties(raw string) (interface{}, error) {
	var p vehiclePropertiesParams
	if err := decodeParams("set_vehicle_properties", raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.NewMissingField("name", "set_vehicle_properties")
	}

	obj, err := d.registry.Update(p.Name, func(o *scene.Object) error {
		if o.Rigidbody == nil {
			return errors.NewHandlerFailure("Object is not a vehicle: " + o.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return MessageResult{
		Success: true,
		Message: fmt.Sprintf("Vehicle properties updated for %s (top_speed=%g, acceleration=%g)",
			obj.Name, defaultFloat(p.TopSpeed, 100), defaultFloat(p.Acceleration, 10)),
	}, nil
}
