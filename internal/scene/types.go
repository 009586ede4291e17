// ABOUTME: Scene-side data model: objects, transforms, and attached components
// ABOUTME: Mirrors the engine state the RPC handlers read and mutate

package scene

// Vector3 is an x/y/z triple. Positions, rotations, and scales all travel
// as three-element arrays on the wire.
type Vector3 [3]float64

// Color is an RGB or RGBA tuple with components in [0,1].
type Color []float64

// Object is a named scene entity. Component pointers are nil until the
// corresponding handler attaches them.
type Object struct {
	Name      string
	Type      string
	Position  Vector3
	Rotation  Vector3
	Scale     Vector3
	Active    bool
	Material  *Material
	Rigidbody *Rigidbody
	Camera    *Camera
	Light     *Light
	Audio     []AudioSource
	Animation string
}

type Material struct {
	Name  string
	Color Color
}

type Rigidbody struct {
	Mass       float64
	UseGravity bool
	Velocity   Vector3
}

type Camera struct {
	FieldOfView float64
	NearClip    float64
	FarClip     float64
	Target      *Vector3
	Background  Color
}

type Light struct {
	LightType      string
	Intensity      float64
	Range          float64
	SpotAngle      float64
	Shadows        bool
	ShadowStrength float64
	Color          Color
}

type AudioSource struct {
	Clip         string
	Loop         bool
	Volume       float64
	Pitch        float64
	SpatialBlend float64
}

// Joint links two objects. The registry keeps joints separately because
// neither endpoint owns the connection.
type Joint struct {
	Object1   string
	Object2   string
	JointType string
}

// Environment holds scene-wide settings written by the skybox and
// post-processing handlers.
type Environment struct {
	Skybox      string
	SkyColor    Color
	PostEffects map[string]float64
}

// clone returns a deep copy so callers never share mutable state with the
// registry.
func (o *Object) clone() *Object {
	c := *o
	if o.Material != nil {
		m := *o.Material
		m.Color = append(Color(nil), o.Material.Color...)
		c.Material = &m
	}
	if o.Rigidbody != nil {
		rb := *o.Rigidbody
		c.Rigidbody = &rb
	}
	if o.Camera != nil {
		cam := *o.Camera
		cam.Background = append(Color(nil), o.Camera.Background...)
		if o.Camera.Target != nil {
			t := *o.Camera.Target
			cam.Target = &t
		}
		c.Camera = &cam
	}
	if o.Light != nil {
		l := *o.Light
		l.Color = append(Color(nil), o.Light.Color...)
		c.Light = &l
	}
	if len(o.Audio) > 0 {
		c.Audio = append([]AudioSource(nil), o.Audio...)
	}
	return &c
}
