// ABOUTME: Uniform result records returned by the RPC handlers
// ABOUTME: Object ops report transforms, non-object ops report a message

package dispatch

import "github.com/scenebridge/unity-bridge/internal/scene"

// ObjectResult is the uniform record for operations that create or touch a
// single scene object.
type ObjectResult struct {
	Success  bool          `json:"success"`
	Name     string        `json:"name"`
	Position scene.Vector3 `json:"position"`
	Rotation scene.Vector3 `json:"rotation"`
	Scale    scene.Vector3 `json:"scale"`
	Active   bool          `json:"active"`
}

// MessageResult is used by operations that affect scene-wide state rather
// than one object.
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WarningResult is the soft-fail shape unique to execute_unity_code: a
// successful envelope carrying a warning instead of an error.
type WarningResult struct {
	Success bool   `json:"success"`
	Warning string `json:"warning"`
}

// ObjectInfoResult extends ObjectResult with component detail for
// get_object_info.
type ObjectInfoResult struct {
	ObjectResult
	Type      string              `json:"type"`
	Material  *MaterialInfo       `json:"material,omitempty"`
	Rigidbody *RigidbodyInfo      `json:"rigidbody,omitempty"`
	Camera    *CameraInfo         `json:"camera,omitempty"`
	Light     *LightInfo          `json:"light,omitempty"`
	Animation string              `json:"animation,omitempty"`
	Audio     []scene.AudioSource `json:"audio_sources,omitempty"`
}

type MaterialInfo struct {
	Name  string      `json:"name"`
	Color scene.Color `json:"color,omitempty"`
}

type RigidbodyInfo struct {
	Mass       float64       `json:"mass"`
	UseGravity bool          `json:"use_gravity"`
	Velocity   scene.Vector3 `json:"velocity"`
}

type CameraInfo struct {
	FieldOfView float64 `json:"field_of_view"`
	NearClip    float64 `json:"near_clip"`
	FarClip     float64 `json:"far_clip"`
}

type LightInfo struct {
	LightType string  `json:"light_type"`
	Intensity float64 `json:"intensity"`
	Range     float64 `json:"range"`
}

func objectResult(obj *scene.Object) ObjectResult {
	return ObjectResult{
		Success:  true,
		Name:     obj.Name,
		Position: obj.Position,
		Rotation: obj.Rotation,
		Scale:    obj.Scale,
		Active:   obj.Active,
	}
}
