// ABOUTME: Camera handlers: creation, activation, property updates
// ABOUTME: Cameras are registry objects with an attached camera component

package dispatch

import (
	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func (d *Dispatcher) handleCreateCamera(raw string) (interface{}, error) {
	var p createCameraParams
	if err := decodeParams("create_camera", raw, &p); err != nil {
		return nil, err
	}
	bg, err := color("create_camera", "backgroundColor", p.BackgroundColor)
	if err != nil {
		return nil, err
	}

	cam := &scene.Camera{
		FieldOfView: defaultFloat(p.FieldOfView, 60),
		NearClip:    0.3,
		FarClip:     1000,
		Background:  bg,
	}
	if len(p.Target) >= 3 {
		t := vec3(p.Target)
		cam.Target = &t
	}

	obj := d.registry.Create(&scene.Object{
		Type:     "CAMERA",
		Position: vec3(p.Position),
		Scale:    scene.Vector3{1, 1, 1},
		Active:   true,
		Camera:   cam,
	})

	// The first camera, or an explicit main camera, becomes active.
	if defaultString(p.CameraType, "main") == "main" || d.registry.ActiveCamera() == "" {
		_ = d.registry.SetActiveCamera(obj.Name)
	}
	return objectResult(obj), nil
}

func (d *Dispatcher) handleSetActiveCamera(raw string) (interface{}, error) {
	var p setActiveCameraParams
	if err := decodeParams("set_active_camera", raw, &p); err != nil {
		return nil, err
	}
	if p.CameraName == "" {
		return nil, errors.NewMissingField("camera_name", "set_active_camera")
	}

	if err := d.registry.SetActiveCamera(p.CameraName); err != nil {
		return nil, err
	}
	return MessageResult{Success: true, Message: "Active camera set to " + p.CameraName}, nil
}

func (d *Dispatcher) handleSetCameraProperties(raw string) (interface{}, error) {
	var p cameraPropertiesParams
	if err := decodeParams("set_camera_properties", raw, &p); err != nil {
		return nil, err
	}
	if p.CameraName == "" {
		return nil, errors.NewMissingField("camera_name", "set_camera_properties")
	}

	obj, err := d.registry.Update(p.CameraName, func(o *scene.Object) error {
		if o.Camera == nil {
			return errors.NewHandlerFailure("Object is not a camera: " + o.Name)
		}
		if p.FieldOfView != nil {
			o.Camera.FieldOfView = *p.FieldOfView
		}
		if p.NearClip != nil {
			o.Camera.NearClip = *p.NearClip
		}
		if p.FarClip != nil {
			o.Camera.FarClip = *p.FarClip
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objectResult(obj), nil
}
