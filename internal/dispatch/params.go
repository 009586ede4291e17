// ABOUTME: Typed parameter records for every RPC method
// ABOUTME: Field names and casing match the original wire protocol exactly

package dispatch

// The original protocol is inconsistent about key casing: older methods use
// snake_case (object_name), the later character/light/camera additions use
// camelCase (lightType, fieldOfView). The tags below preserve both.

type getObjectInfoParams struct {
	ObjectName string `json:"object_name"`
}

type createObjectParams struct {
	Type     string    `json:"type"`
	Name     string    `json:"name"`
	Location []float64 `json:"location"`
	Rotation []float64 `json:"rotation"`
	Scale    []float64 `json:"scale"`
}

type modifyObjectParams struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"`
	Rotation []float64 `json:"rotation"`
	Scale    []float64 `json:"scale"`
	Visible  *bool     `json:"visible"`
}

type deleteObjectParams struct {
	Name string `json:"name"`
}

type setMaterialParams struct {
	ObjectName   string    `json:"object_name"`
	MaterialName string    `json:"material_name"`
	Color        []float64 `json:"color"`
}

type executeCodeParams struct {
	Code string `json:"code"`
}

type createTerrainParams struct {
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	Height    float64 `json:"height"`
	Heightmap string  `json:"heightmap"`
}

type createWaterParams struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

type createVegetationParams struct {
	Type     string    `json:"type"`
	Position []float64 `json:"position"`
	Scale    float64   `json:"scale"`
	Color    []float64 `json:"color"`
}

type createSkyboxParams struct {
	Type  string    `json:"type"`
	Color []float64 `json:"color"`
}

type createCharacterParams struct {
	CharacterType string    `json:"character_type"`
	Position      []float64 `json:"position"`
}

type improvedCharacterParams struct {
	CharacterType string    `json:"characterType"`
	Position      []float64 `json:"position"`
	OutfitType    string    `json:"outfitType"`
	HasWeapon     bool      `json:"hasWeapon"`
	WeaponType    string    `json:"weaponType"`
	SkinColor     []float64 `json:"skinColor"`
	Height        float64   `json:"height"`
	BodyType      float64   `json:"bodyType"`
	HairColor     []float64 `json:"hairColor"`
	HairStyle     string    `json:"hairStyle"`
}

type legoCharacterParams struct {
	CharacterType string    `json:"characterType"`
	Position      []float64 `json:"position"`
	BodyColor     []float64 `json:"bodyColor"`
	HeadColor     []float64 `json:"headColor"`
}

type setAnimationParams struct {
	Name      string `json:"name"`
	Animation string `json:"animation"`
}

type characterControllerParams struct {
	Name       string  `json:"name"`
	Speed      float64 `json:"speed"`
	JumpHeight float64 `json:"jump_height"`
	Gravity    float64 `json:"gravity"`
}

type createVehicleParams struct {
	VehicleType string    `json:"vehicle_type"`
	Position    []float64 `json:"position"`
	Color       []float64 `json:"color"`
}

type vehiclePropertiesParams struct {
	Name         string  `json:"name"`
	TopSpeed     float64 `json:"top_speed"`
	Acceleration float64 `json:"acceleration"`
	Braking      float64 `json:"braking"`
	Steering     float64 `json:"steering"`
}

type createLightParams struct {
	LightType      string    `json:"lightType"`
	Position       []float64 `json:"position"`
	Intensity      float64   `json:"intensity"`
	Color          []float64 `json:"color"`
	Range          float64   `json:"range"`
	SpotAngle      float64   `json:"spotAngle"`
	Shadows        *bool     `json:"shadows"`
	ShadowStrength float64   `json:"shadowStrength"`
}

type createParticleSystemParams struct {
	EffectType string    `json:"effectType"`
	Position   []float64 `json:"position"`
	Scale      float64   `json:"scale"`
	StartColor []float64 `json:"startColor"`
	Duration   float64   `json:"duration"`
	Looping    *bool     `json:"looping"`
}

type postProcessingParams struct {
	Effect    string  `json:"effect"`
	Intensity float64 `json:"intensity"`
}

type addRigidbodyParams struct {
	ObjectName string  `json:"object_name"`
	Mass       float64 `json:"mass"`
	UseGravity *bool   `json:"use_gravity"`
}

type applyForceParams struct {
	ObjectName string    `json:"object_name"`
	Force      []float64 `json:"force"`
	Mode       string    `json:"mode"`
}

type createJointParams struct {
	Object1   string `json:"object1"`
	Object2   string `json:"object2"`
	JointType string `json:"joint_type"`
}

type createCameraParams struct {
	CameraType      string    `json:"camera_type"`
	Position        []float64 `json:"position"`
	Target          []float64 `json:"target"`
	FieldOfView     float64   `json:"fieldOfView"`
	BackgroundColor []float64 `json:"backgroundColor"`
}

type setActiveCameraParams struct {
	CameraName string `json:"camera_name"`
}

type cameraPropertiesParams struct {
	CameraName  string   `json:"camera_name"`
	FieldOfView *float64 `json:"field_of_view"`
	NearClip    *float64 `json:"near_clip"`
	FarClip     *float64 `json:"far_clip"`
}

type playSoundParams struct {
	SoundType string    `json:"sound_type"`
	Position  []float64 `json:"position"`
	Volume    float64   `json:"volume"`
}

type createAudioSourceParams struct {
	ObjectName   string  `json:"object_name"`
	AudioType    string  `json:"audio_type"`
	Loop         bool    `json:"loop"`
	Volume       float64 `json:"volume"`
	Pitch        float64 `json:"pitch"`
	SpatialBlend float64 `json:"spatialBlend"`
}
