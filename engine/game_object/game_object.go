package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/model"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
)

var nextID atomic.Uint64

type gameObject struct {
	id          uint64
	name        string
	enabled     atomic.Bool
	mdl         model.Model
	mat         material.Material
	renderOrder int

	position [3]float32
	rotation [3]float32 // XYZ Euler, radians
	scale    [3]float32

	parent   *gameObject
	children []*gameObject
}

// GameObject is a node in the scene graph. A node without a model is a pure
// transform group; a node with a model and material is drawn.
//
// World transforms are composed parent × child, so rotating a group rotates
// everything beneath it.
type GameObject interface {
	// ID returns the object's unique identifier, assigned at construction.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	Name() string

	// Enabled returns whether this object and its children are drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the mesh drawn for this object, or nil for a group.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the material used to draw the model.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// RenderOrder returns the draw priority; lower values draw first.
	RenderOrder() int

	// Position returns the local translation.
	//
	// Returns:
	//   - x, y, z: translation relative to the parent
	Position() (x, y, z float32)

	// Rotation returns the local XYZ Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: scale factors
	Scale() (sx, sy, sz float32)

	// SetEnabled shows or hides the object and its children.
	//
	// Parameters:
	//   - enabled: true to draw
	SetEnabled(enabled bool)

	// SetModel replaces the mesh.
	//
	// Parameters:
	//   - m: the new model
	SetModel(m model.Model)

	// SetMaterial replaces the material.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m material.Material)

	// SetRenderOrder sets the draw priority.
	//
	// Parameters:
	//   - order: lower values draw first
	SetRenderOrder(order int)

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: translation relative to the parent
	SetPosition(x, y, z float32)

	// SetRotation sets the local XYZ Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// Add attaches child beneath this object, detaching it from any previous parent.
	// Adding an object to itself or to one of its descendants is ignored.
	//
	// Parameters:
	//   - child: the object to attach
	Add(child GameObject)

	// Remove detaches child if it is a direct child of this object.
	//
	// Parameters:
	//   - child: the object to detach
	Remove(child GameObject)

	// Children returns the direct children in insertion order.
	Children() []GameObject

	// Parent returns the parent object, or nil for a root.
	Parent() GameObject

	// LocalMatrix returns translation × rotation × scale.
	LocalMatrix() common.Mat4

	// WorldMatrix returns the product of all ancestor local matrices and this one.
	WorldMatrix() common.Mat4

	// Traverse calls fn for this object and every enabled descendant,
	// depth-first, passing each node's world matrix. Disabled subtrees are skipped.
	//
	// Parameters:
	//   - fn: visitor
	Traverse(fn func(obj GameObject, world common.Mat4))
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the provided options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:    nextID.Add(1),
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

// NewMesh is shorthand for a drawable object.
func NewMesh(m model.Model, mat material.Material, options ...GameObjectBuilderOption) GameObject {
	return NewGameObject(append([]GameObjectBuilderOption{WithModel(m), WithMaterial(mat)}, options...)...)
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) RenderOrder() int {
	return g.renderOrder
}

func (g *gameObject) Position() (x, y, z float32) {
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mat = m
}

func (g *gameObject) SetRenderOrder(order int) {
	g.renderOrder = order
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) Add(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil {
		return
	}
	for p := g; p != nil; p = p.parent {
		if p == c {
			return
		}
	}
	if c.parent != nil {
		c.parent.Remove(c)
	}
	c.parent = g
	g.children = append(g.children, c)
}

func (g *gameObject) Remove(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok {
		return
	}
	for i, existing := range g.children {
		if existing == c {
			g.children = append(g.children[:i], g.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (g *gameObject) Children() []GameObject {
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) Parent() GameObject {
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) LocalMatrix() common.Mat4 {
	return common.Compose(g.position, g.rotation, g.scale)
}

func (g *gameObject) WorldMatrix() common.Mat4 {
	world := g.LocalMatrix()
	for p := g.parent; p != nil; p = p.parent {
		world = p.LocalMatrix().Mul(world)
	}
	return world
}

func (g *gameObject) Traverse(fn func(obj GameObject, world common.Mat4)) {
	var parentWorld common.Mat4
	if g.parent != nil {
		parentWorld = g.parent.WorldMatrix()
	} else {
		parentWorld = common.Identity4()
	}
	g.traverse(parentWorld, fn)
}

func (g *gameObject) traverse(parentWorld common.Mat4, fn func(GameObject, common.Mat4)) {
	if !g.Enabled() {
		return
	}
	world := parentWorld.Mul(g.LocalMatrix())
	fn(g, world)
	for _, c := range g.children {
		c.traverse(world, fn)
	}
}
