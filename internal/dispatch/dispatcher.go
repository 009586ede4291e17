// ABOUTME: Method table and dispatch pipeline between envelope decode and handlers
// ABOUTME: Enforces the missing-params gate and the unknown-method check

package dispatch

import (
	"encoding/json"

	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/logger"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

type handlerFunc func(raw string) (interface{}, error)

// Dispatcher routes a method name to its handler. The table is fixed at
// construction; nothing registers methods at runtime.
type Dispatcher struct {
	registry *scene.Registry
	methods  map[string]handlerFunc
}

func New(registry *scene.Registry) *Dispatcher {
	d := &Dispatcher{registry: registry}
	d.methods = map[string]handlerFunc{
		"get_scene_info":           d.handleGetSceneInfo,
		"get_object_info":          d.handleGetObjectInfo,
		"create_object":            d.handleCreateObject,
		"modify_object":            d.handleModifyObject,
		"delete_object":            d.handleDeleteObject,
		"set_material":             d.handleSetMaterial,
		"execute_unity_code":       d.handleExecuteCode,
		"create_terrain":           d.handleCreateTerrain,
		"create_water":             d.handleCreateWater,
		"create_vegetation":        d.handleCreateVegetation,
		"create_skybox":            d.handleCreateSkybox,
		"create_character":         d.handleCreateCharacter,
		"improved_character":       d.handleImprovedCharacter,
		"create_lego_character":    d.handleLegoCharacter,
		"set_animation":            d.handleSetAnimation,
		"set_character_controller": d.handleCharacterController,
		"create_vehicle":           d.handleCreateVehicle,
		"set_vehicle_properties":   d.handleVehicleProperties,
		"create_light":             d.handleCreateLight,
		"create_particle_system":   d.handleCreateParticleSystem,
		"set_post_processing":      d.handleSetPostProcessing,
		"add_rigidbody":            d.handleAddRigidbody,
		"apply_force":              d.handleApplyForce,
		"create_joint":             d.handleCreateJoint,
		"create_camera":            d.handleCreateCamera,
		"set_active_camera":        d.handleSetActiveCamera,
		"set_camera_properties":    d.handleSetCameraProperties,
		"play_sound":               d.handlePlaySound,
		"create_audio_source":      d.handleCreateAudioSource,
	}
	return d
}

// Methods returns the registered method names in map order, for the
// management API.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.methods))
	for name := range d.methods {
		names = append(names, name)
	}
	return names
}

// Dispatch routes one request. get_scene_info is the only zero-argument
// method; everything else must arrive with non-empty params.
func (d *Dispatcher) Dispatch(method, rawParams string) (interface{}, error) {
	if method != "get_scene_info" && (rawParams == "" || rawParams == "{}") {
		return nil, errors.NewMissingParams(method)
	}

	handler, ok := d.methods[method]
	if !ok {
		return nil, errors.NewUnknownMethod(method)
	}

	logger.Debug("dispatching %s", method)
	return handler(rawParams)
}

// decodeParams unmarshals the raw params substring into a method-specific
// record.
func decodeParams(method, raw string, dst interface{}) error {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return errors.NewInvalidField("params", method, err.Error())
	}
	return nil
}

// vec3 converts a wire array to a Vector3, ignoring short arrays.
func vec3(v []float64) scene.Vector3 {
	if len(v) >= 3 {
		return scene.Vector3{v[0], v[1], v[2]}
	}
	return scene.Vector3{}
}

// vec3Default is vec3 with a fallback for absent values, used for scale.
func vec3Default(v []float64, def scene.Vector3) scene.Vector3 {
	if len(v) >= 3 {
		return scene.Vector3{v[0], v[1], v[2]}
	}
	return def
}

// color validates an RGB or RGBA array. nil is allowed and means "unset".
func color(method, field string, v []float64) (scene.Color, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 3 && len(v) != 4 {
		return nil, errors.NewInvalidField(field, method, "expected 3 or 4 color components")
	}
	return scene.Color(v), nil
}

func defaultFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
