package host

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/felixtrz/immersive-web-sdk/geometry"
)

// Scene is a YAML fixture describing the meshes to register with a fresh
// Engine before the demo host starts ticking it — a stand-in for whatever a
// real host's asset pipeline would send over AddEnvironment.
type Scene struct {
	StartPosition [3]float32   `yaml:"startPosition"`
	Meshes        []SceneMesh  `yaml:"meshes"`
}

// SceneMesh is one environment in a Scene fixture.
type SceneMesh struct {
	Handle    int32       `yaml:"handle"`
	Kind      string      `yaml:"kind"` // "static" | "kinematic"
	Positions []float32   `yaml:"positions"`
	Indices   []uint32    `yaml:"indices"`
	Transform *[16]float32 `yaml:"transform"`
}

// LoadScene reads a Scene fixture from path.
func LoadScene(path string) (Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// GeometryKind maps the fixture's string tag onto geometry.Kind.
func (m SceneMesh) GeometryKind() geometry.Kind {
	if m.Kind == "kinematic" {
		return geometry.KindKinematic
	}
	return geometry.KindStatic
}

// Vertices decodes the flat position array into mgl32.Vec3 triples.
func (m SceneMesh) Vertices() []mgl32.Vec3 {
	verts := make([]mgl32.Vec3, 0, len(m.Positions)/3)
	for i := 0; i+2 < len(m.Positions); i += 3 {
		verts = append(verts, mgl32.Vec3{m.Positions[i], m.Positions[i+1], m.Positions[i+2]})
	}
	return verts
}

// WorldMatrix returns the mesh's initial transform, defaulting to identity.
func (m SceneMesh) WorldMatrix() mgl32.Mat4 {
	if m.Transform == nil {
		return mgl32.Ident4()
	}
	var mat mgl32.Mat4
	copy(mat[:], m.Transform[:])
	return mat
}
