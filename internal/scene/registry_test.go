package scene

import (
	"strings"
	"sync"
	"testing"
)

func TestCreateGeneratesUniqueNames(t *testing.T) {
	r := NewRegistry("")

	a := r.Create(&Object{Type: "CUBE", Active: true})
	b := r.Create(&Object{Type: "CUBE", Active: true})

	if a.Name == b.Name {
		t.Errorf("expected unique generated names, got %q twice", a.Name)
	}
	if !strings.HasPrefix(a.Name, "Cube_") {
		t.Errorf("generated name = %q, want Cube_ prefix", a.Name)
	}
}

func TestCreatePreservesCallerName(t *testing.T) {
	r := NewRegistry("")

	obj := r.Create(&Object{Type: "SPHERE", Name: "Ball", Active: true})
	if obj.Name != "Ball" {
		t.Errorf("name = %q, want Ball", obj.Name)
	}

	got, ok := r.Get("Ball")
	if !ok {
		t.Fatal("Ball not found after create")
	}
	if got.Type != "SPHERE" {
		t.Errorf("type = %q", got.Type)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	r := NewRegistry("")
	r.Create(&Object{Type: "CUBE", Name: "X", Active: true})

	got, _ := r.Get("X")
	got.Position = Vector3{9, 9, 9}
	got.Material = &Material{Name: "Red"}

	fresh, _ := r.Get("X")
	if fresh.Position != (Vector3{}) {
		t.Errorf("mutation through a Get copy leaked into the registry")
	}
	if fresh.Material != nil {
		t.Errorf("material attached through a Get copy leaked into the registry")
	}
}

func TestUpdateMissingObject(t *testing.T) {
	r := NewRegistry("")

	_, err := r.Update("Ghost", func(o *Object) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing object")
	}
	if !strings.Contains(err.Error(), "Ghost") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q", err)
	}
}

func TestDeleteRemovesObjectAndClearsActiveCamera(t *testing.T) {
	r := NewRegistry("")
	r.Create(&Object{Type: "CAMERA", Name: "Cam", Active: true, Camera: &Camera{FieldOfView: 60}})

	if err := r.SetActiveCamera("Cam"); err != nil {
		t.Fatalf("set active camera: %v", err)
	}
	if err := r.Delete("Cam"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if r.ActiveCamera() != "" {
		t.Errorf("active camera should be cleared after delete")
	}
	if err := r.Delete("Cam"); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestSetActiveCameraRejectsNonCamera(t *testing.T) {
	r := NewRegistry("")
	r.Create(&Object{Type: "CUBE", Name: "Box", Active: true})

	if err := r.SetActiveCamera("Box"); err == nil {
		t.Error("expected error for non-camera object")
	}
}

func TestAddJointRequiresBothEndpoints(t *testing.T) {
	r := NewRegistry("")
	r.Create(&Object{Type: "CUBE", Name: "A", Active: true})

	err := r.AddJoint(Joint{Object1: "A", Object2: "B", JointType: "fixed"})
	if err == nil {
		t.Fatal("expected error for missing endpoint")
	}

	r.Create(&Object{Type: "CUBE", Name: "B", Active: true})
	if err := r.AddJoint(Joint{Object1: "A", Object2: "B", JointType: "fixed"}); err != nil {
		t.Errorf("joint between existing objects failed: %v", err)
	}
}

func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry("TestScene")
	r.Create(&Object{Type: "CUBE", Name: "First", Active: true})
	r.Create(&Object{Type: "SPHERE", Name: "Second", Active: true})

	snap := r.Snapshot()
	if snap.Name != "TestScene" {
		t.Errorf("scene name = %q", snap.Name)
	}
	if snap.ObjectCount != 2 || len(snap.Objects) != 2 {
		t.Fatalf("object count = %d / %d", snap.ObjectCount, len(snap.Objects))
	}
	if snap.Objects[0].Name != "First" || snap.Objects[1].Name != "Second" {
		t.Errorf("snapshot not in creation order: %+v", snap.Objects)
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry("")
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				obj := r.Create(&Object{Type: "CUBE", Active: true})
				_, _ = r.Update(obj.Name, func(o *Object) error {
					o.Position = Vector3{1, 2, 3}
					return nil
				})
				_, _ = r.Get(obj.Name)
				_ = r.Snapshot()
			}
		}()
	}
	wg.Wait()

	if got := r.Snapshot().ObjectCount; got != 16*50 {
		t.Errorf("object count = %d, want %d", got, 16*50)
	}
}
