// ABOUTME: Core object handlers: scene info, create/modify/delete, materials
// ABOUTME: Plus the deliberately soft-failing code execution handler

package dispatch

import (
	"strings"

	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/logger"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func (d *Dispatcher) handleGetSceneInfo(raw string) (interface{}, error) {
	return d.registry.Snapshot(), nil
}

func (d *Dispatcher) handleGetObjectInfo(raw string) (interface{}, error) {
	var p getObjectInfoParams
	if err := decodeParams("get_object_info", raw, &p); err != nil {
		return nil, err
	}
	if p.ObjectName == "" {
		return nil, errors.NewMissingField("object_name", "get_object_info")
	}

	obj, ok := d.registry.Get(p.ObjectName)
	if !ok {
		return nil, errors.NewNotFound("Object", p.ObjectName)
	}

	info := ObjectInfoResult{
		ObjectResult: objectResult(obj),
		Type:         obj.Type,
		Animation:    obj.Animation,
		Audio:        obj.Audio,
	}
	if obj.Material != nil {
		info.Material = &MaterialInfo{Name: obj.Material.Name, Color: obj.Material.Color}
	}
	if obj.Rigidbody != nil {
		info.Rigidbody = &RigidbodyInfo{
			Mass:       obj.Rigidbody.Mass,
			UseGravity: obj.Rigidbody.UseGravity,
			Velocity:   obj.Rigidbody.Velocity,
		}
	}
	if obj.Camera != nil {
		info.Camera = &CameraInfo{
			FieldOfView: obj.Camera.FieldOfView,
			NearClip:    obj.Camera.NearClip,
			FarClip:     obj.Camera.FarClip,
		}
	}
	if obj.Light != nil {
		info.Light = &LightInfo{
			LightType: obj.Light.LightType,
			Intensity: obj.Light.Intensity,
			Range:     obj.Light.Range,
		}
	}
	return info, nil
}

func (d *Dispatcher) handleCreateObject(raw string) (interface{}, error) {
	var p createObjectParams
	if err := decodeParams("create_object", raw, &p); err != nil {
		return nil, err
	}
	if p.Type == "" {
		return nil, errors.NewMissingField("type", "create_object")
	}

	obj := d.registry.Create(&scene.Object{
		Name:     p.Name,
		Type:     strings.ToUpper(p.Type),
		Position: vec3(p.Location),
		Rotation: vec3(p.Rotation),
		Scale:    vec3Default(p.Scale, scene.Vector3{1, 1, 1}),
		Active:   true,
	})
	return objectResult(obj), nil
}

func (d *Dispatcher) handleModifyObject(raw string) (interface{}, error) {
	var p modifyObjectParams
	if err := decodeParams("modify_object", raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.NewMissingField("name", "modify_object")
	}

	obj, err := d.registry.Update(p.Name, func(o *scene.Object) error {
		if len(p.Location) >= 3 {
			o.Position = vec3(p.Location)
		}
		if len(p.Rotation) >= 3 {
			o.Rotation = vec3(p.Rotation)
		}
		if len(p.Scale) >= 3 {
			o.Scale = vec3(p.Scale)
		}
		if p.Visible != nil {
			o.Active = *p.Visible
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objectResult(obj), nil
}

func (d *Dispatcher) handleDeleteObject(raw string) (interface{}, error) {
	var p deleteObjectParams
	if err := decodeParams("delete_object", raw, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.NewMissingField("name", "delete_object")
	}

	if err := d.registry.Delete(p.Name); err != nil {
		return nil, err
	}
	return MessageResult{Success: true, Message: "Deleted object: " + p.Name}, nil
}

func (d *Dispatcher) handleSetMaterial(raw string) (interface{}, error) {
	var p setMaterialParams
	if err := decodeParams("set_material", raw, &p); err != nil {
		return nil, err
	}
	if p.ObjectName == "" {
		return nil, errors.NewMissingField("object_name", "set_material")
	}
	col, err := color("set_material", "color", p.Color)
	if err != nil {
		return nil, err
	}

	obj, err := d.registry.Update(p.ObjectName, func(o *scene.Object) error {
		if o.Material == nil {
			o.Material = &scene.Material{}
		}
		if p.MaterialName != "" {
			o.Material.Name = p.MaterialName
		} else if o.Material.Name == "" {
			o.Material.Name = o.Name + "_Material"
		}
		if col != nil {
			o.Material.Color = col
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objectResult(obj), nil
}

// handleExecuteCode is the one handler with a soft-fail contract: internal
// failures come back as a successful result carrying a warning string, not
// as an error envelope. There is no real interpreter behind it; a small
// keyword matcher covers the primitive calls seen in the wild.
func (d *Dispatcher) handleExecuteCode(raw string) (result interface{}, err error) {
	var p executeCodeParams
	if derr := decodeParams("execute_unity_code", raw, &p); derr != nil {
		return nil, derr
	}
	if p.Code == "" {
		return nil, errors.NewMissingField("code", "execute_unity_code")
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("execute_unity_code recovered: %v", r)
			result = WarningResult{Success: true, Warning: "Code execution failed internally; no changes were applied"}
			err = nil
		}
	}()

	if strings.Contains(p.Code, "CreatePrimitive") {
		objType := "CUBE"
		for _, t := range []string{"Sphere", "Cylinder", "Capsule", "Plane", "Quad"} {
			if strings.Contains(p.Code, "PrimitiveType."+t) {
				objType = strings.ToUpper(t)
				break
			}
		}
		obj := d.registry.Create(&scene.Object{Type: objType, Active: true})
		return MessageResult{Success: true, Message: "Created primitive: " + obj.Name}, nil
	}

	return WarningResult{
		Success: true,
		Warning: "Code execution is limited: no recognized engine calls were found",
	}, nil
}
