// ABOUTME: Concurrent registry of named scene objects shared by all handlers
// ABOUTME: Replaces the engine-side global caches with one guarded structure

package scene

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/scenebridge/unity-bridge/internal/errors"
)

// Registry holds every object in the active scene. All access goes through
// the mutex; connection handlers run concurrently and share one registry.
type Registry struct {
	mu           sync.RWMutex
	sceneName    string
	objects      map[string]*Object
	order        []string
	joints       []Joint
	activeCamera string
	env          Environment
}

func NewRegistry(sceneName string) *Registry {
	if sceneName == "" {
		sceneName = "SampleScene"
	}
	return &Registry{
		sceneName: sceneName,
		objects:   make(map[string]*Object),
		env:       Environment{PostEffects: make(map[string]float64)},
	}
}

// Create inserts an object, generating a unique name from its type when the
// caller didn't supply one, and returns the stored copy.
func (r *Registry) Create(obj *Object) *Object {
	r.mu.Lock()
	defer r.mu.Unlock()

	if obj.Name == "" {
		obj.Name = generatedName(obj.Type)
	}
	for {
		if _, taken := r.objects[obj.Name]; !taken {
			break
		}
		obj.Name = generatedName(obj.Type)
	}

	stored := obj.clone()
	r.objects[stored.Name] = stored
	r.order = append(r.order, stored.Name)
	return stored.clone()
}

// Get returns a copy of the named object.
func (r *Registry) Get(name string) (*Object, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, ok := r.objects[name]
	if !ok {
		return nil, false
	}
	return obj.clone(), true
}

// Update applies fn to the named object under the write lock. fn receives
// the live record; any error it returns is passed through unchanged.
func (r *Registry) Update(name string, fn func(*Object) error) (*Object, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objects[name]
	if !ok {
		return nil, errors.NewNotFound("Object", name)
	}
	if err := fn(obj); err != nil {
		return nil, err
	}
	return obj.clone(), nil
}

// Delete removes the named object.
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objects[name]; !ok {
		return errors.NewNotFound("Object", name)
	}
	delete(r.objects, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.activeCamera == name {
		r.activeCamera = ""
	}
	return nil
}

// AddJoint records a connection between two existing objects.
func (r *Registry) AddJoint(j Joint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objects[j.Object1]; !ok {
		return errors.NewNotFound("Object", j.Object1)
	}
	if _, ok := r.objects[j.Object2]; !ok {
		return errors.NewNotFound("Object", j.Object2)
	}
	r.joints = append(r.joints, j)
	return nil
}

// SetActiveCamera marks the named camera object as active.
func (r *Registry) SetActiveCamera(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objects[name]
	if !ok {
		return errors.NewNotFound("Camera", name)
	}
	if obj.Camera == nil {
		return errors.NewHandlerFailure("Object is not a camera: " + name)
	}
	r.activeCamera = name
	return nil
}

func (r *Registry) ActiveCamera() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeCamera
}

// SetEnvironment lets the skybox and post-processing handlers adjust
// scene-wide settings.
func (r *Registry) SetEnvironment(fn func(*Environment)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.env)
}

// ObjectSummary is the per-object slice of a scene snapshot.
type ObjectSummary struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Position Vector3 `json:"position"`
	Active   bool    `json:"active"`
}

// Snapshot describes the whole scene for get_scene_info and the management
// API.
type Snapshot struct {
	Name         string          `json:"name"`
	ObjectCount  int             `json:"object_count"`
	Objects      []ObjectSummary `json:"objects"`
	ActiveCamera string          `json:"active_camera,omitempty"`
	Skybox       string          `json:"skybox,omitempty"`
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		Name:         r.sceneName,
		ObjectCount:  len(r.order),
		Objects:      make([]ObjectSummary, 0, len(r.order)),
		ActiveCamera: r.activeCamera,
		Skybox:       r.env.Skybox,
	}
	for _, name := range r.order {
		obj := r.objects[name]
		snap.Objects = append(snap.Objects, ObjectSummary{
			Name:     obj.Name,
			Type:     obj.Type,
			Position: obj.Position,
			Active:   obj.Active,
		})
	}
	return snap
}

// generatedName builds names like Cube_3f2a9c1d from the object type and a
// short uuid suffix.
func generatedName(objType string) string {
	base := objType
	if base == "" {
		base = "Object"
	}
	if len(base) > 1 {
		base = strings.ToUpper(base[:1]) + strings.ToLower(base[1:])
	}
	return base + "_" + uuid.New().String()[:8]
}
