// ABOUTME: Physics handlers: rigidbodies, forces, joints
// ABOUTME: Forces integrate into the rigidbody velocity so state is observable

package dispatch

import (
	"strings"

	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func (d *Dispatcher) handleAddRigidbody(raw string) (interface{}, error) {
	var p addRigidbodyParams
	if err := decodeParams("add_rigidbody", raw, &p); err != nil {
		return nil, err
	}
	if p.ObjectName == "" {
		return nil, errors.NewMissingField("object_name", "add_rigidbody")
	}

	obj, err := d.registry.Update(p.ObjectName, func(o *scene.Object) error {
		o.Rigidbody = &scene.Rigidbody{
			Mass:       defaultFloat(p.Mass, 1),
			UseGravity: boolOr(p.UseGravity, true),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objectResult(obj), nil
}

func (d *Dispatcher) handleApplyForce(raw string) (interface{}, error) {
	var p applyForceParams
	if err := decodeParams("apply_force", raw, &p); err != nil {
		return nil, err
	}
	if p.ObjectName == "" {
		return nil, errors.NewMissingField("object_name", "apply_force")
	}
	if len(p.Force) < 3 {
		return nil, errors.NewInvalidField("force", "apply_force", "expected a 3-element array")
	}

	mode := strings.ToLower(defaultString(p.Mode, "force"))
	switch mode {
	case "force", "impulse", "velocity", "acceleration":
	default:
		return nil, errors.NewInvalidField("mode", "apply_force", "unknown force mode "+p.Mode)
	}

	force := vec3(p.Force)
	obj, err := d.registry.Update(p.ObjectName, func(o *scene.Object) error {
		if o.Rigidbody == nil {
			return errors.NewHandlerFailure("Object has no rigidbody: " + o.Name)
		}
		scale := 1.0
		if mode == "force" || mode == "acceleration" {
			// Continuous modes are integrated over a nominal fixed step.
			scale = 0.02
		}
		if mode != "velocity" && o.Rigidbody.Mass > 0 {
			scale /= o.Rigidbody.Mass
		}
		for i := range force {
			o.Rigidbody.Velocity[i] += force[i] * scale
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objectResult(obj), nil
}

func (d *Dispatcher) handleCreateJoint(raw string) (interface{}, error) {
	var p createJointParams
	if err := decodeParams("create_joint", raw, &p); err != nil {
		return nil, err
	}
	if p.Object1 == "" {
		return nil, errors.NewMissingField("object1", "create_joint")
	}
	if p.Object2 == "" {
		return nil, errors.NewMissingField("object2", "create_joint")
	}

	jointType := strings.ToLower(defaultString(p.JointType, "fixed"))
	err := d.registry.AddJoint(scene.Joint{
		Object1:   p.Object1,
		Object2:   p.Object2,
		JointType: jointType,
	})
	if err != nil {
		return nil, err
	}
	return MessageResult{
		Success: true,
		Message: "Created " + jointType + " joint between " + p.Object1 + " and " + p.Object2,
	}, nil
}
