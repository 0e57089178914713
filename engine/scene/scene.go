package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/game_object"
	"github.com/Carmen-Shannon/chipview/engine/light"
)

// DefaultBackground is the clear color used when none is configured.
var DefaultBackground = common.ColorFromHex(0x000000)

// DrawItem is one drawable object with its resolved world transform.
type DrawItem struct {
	Object game_object.GameObject
	World  common.Mat4
}

// Scene holds the root objects, lights and background of a view.
// Thread-safe for concurrent access; the object graph itself is mutated on
// the render thread.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Background returns the clear color.
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - color: the new background
	SetBackground(color common.Color)

	// Add appends root objects. Objects already in the scene are ignored.
	//
	// Parameters:
	//   - objects: the objects to add
	Add(objects ...game_object.GameObject)

	// Remove removes a root object by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Get retrieves a root object by ID, or nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Objects returns the root objects in insertion order.
	Objects() []game_object.GameObject

	// Count returns the number of root objects.
	Count() int

	// AddLight adds a light. Adding the same light twice is a no-op.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns a snapshot of the scene's lights.
	Lights() []light.Light

	// DrawList flattens the enabled object graph into drawable items, those
	// with both a model and a material, stable-sorted by render order.
	//
	// Returns:
	//   - []DrawItem: items in draw order
	DrawList() []DrawItem

	// Clear removes all objects and lights.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name       string
	background common.Color
	objects    []game_object.GameObject
	lights     []light.Light

	drawPool []DrawItem // reused between frames
}

var _ Scene = &scene{}

// NewScene creates a new Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		background: DefaultBackground,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(color common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = color
}

func (s *scene) Add(objects ...game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(objects...)
}

func (s *scene) add(objects ...game_object.GameObject) {
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		if slices.ContainsFunc(s.objects, func(o game_object.GameObject) bool { return o.ID() == obj.ID() }) {
			continue
		}
		s.objects = append(s.objects, obj)
	}
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = slices.DeleteFunc(s.objects, func(o game_object.GameObject) bool { return o.ID() == id })
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.objects {
		if o.ID() == id {
			return o
		}
	}
	return nil
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLight(l)
}

func (s *scene) addLight(l light.Light) {
	if l == nil || slices.Contains(s.lights, l) {
		return
	}
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = slices.DeleteFunc(s.lights, func(existing light.Light) bool { return existing == l })
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) DrawList() []DrawItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.drawPool[:0]
	for _, root := range s.objects {
		root.Traverse(func(obj game_object.GameObject, world common.Mat4) {
			if obj.Model() == nil || obj.Material() == nil {
				return
			}
			items = append(items, DrawItem{Object: obj, World: world})
		})
	}
	slices.SortStableFunc(items, func(a, b DrawItem) int {
		return a.Object.RenderOrder() - b.Object.RenderOrder()
	})
	s.drawPool = items
	return slices.Clone(items)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
	s.lights = nil
}
