package geometry

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
	deadlock "github.com/sasha-s/go-deadlock"
	"github.com/scylladb/go-set/i32set"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"

	"github.com/felixtrz/immersive-web-sdk/oerror"
)

// Registry is the single owner of every collision environment. It is safe
// for concurrent use; the worker transport and any diagnostics goroutine may
// query it while a host message updates it, though in practice the engine
// only ever touches it from the single tick loop.
//
// Mirrors the teacher's world.World handle registry: a mutex-guarded map
// keyed by an opaque handle, plus a set tracking which handles are live.
type Registry struct {
	log *logrus.Logger

	mu      deadlock.RWMutex
	envs    map[int32]*Environment
	tracked i32set.Set
}

// NewRegistry constructs an empty registry. log may be nil, in which case a
// default logrus.Logger is used.
func NewRegistry(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.New()
	}
	return &Registry{
		log:     log,
		envs:    make(map[int32]*Environment),
		tracked: i32set.New(),
	}
}

// Add inserts a new environment. Duplicate handles are rejected with
// oerror.ErrDuplicateHandle, malformed vertex/index data or a non-finite or
// singular transform with oerror.ErrInvalidGeometry/oerror.ErrInvalidMatrix,
// all logged, per spec's failure semantics.
func (r *Registry) Add(handle int32, verts []mgl32.Vec3, indices []uint32, kind Kind, transform mgl32.Mat4) error {
	if err := validateGeometry(verts, indices); err != nil {
		r.log.WithField("handle", handle).WithError(err).Warn("geometry: add_environment ignored, invalid geometry")
		return err
	}
	if !finiteMat4(transform) || transform.Det() == 0 {
		r.log.WithField("handle", handle).Warn("geometry: add_environment ignored, non-finite or singular world matrix")
		return oerror.ErrInvalidMatrix
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.envs[handle]; exists {
		r.log.WithField("handle", handle).Warn("geometry: add_environment ignored, duplicate handle")
		return oerror.ErrDuplicateHandle
	}

	r.envs[handle] = newEnvironment(handle, verts, indices, kind, transform)
	r.tracked.Add(handle)
	return nil
}

// validateGeometry rejects vertex/index data that cannot describe a valid
// triangle soup: too few vertices, an index buffer not a multiple of 3, or
// an index outside the vertex range.
func validateGeometry(verts []mgl32.Vec3, indices []uint32) error {
	if len(verts) < 3 {
		return oerror.ErrInvalidGeometry
	}
	if len(indices) > 0 {
		if len(indices)%3 != 0 {
			return oerror.ErrInvalidGeometry
		}
		for _, idx := range indices {
			if int(idx) >= len(verts) {
				return oerror.ErrInvalidGeometry
			}
		}
		return nil
	}
	if len(verts)%3 != 0 {
		return oerror.ErrInvalidGeometry
	}
	return nil
}

func finiteMat4(m mgl32.Mat4) bool {
	for _, v := range m {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Remove deletes an environment. Removing an absent handle is a no-op.
func (r *Registry) Remove(handle int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.envs, handle)
	r.tracked.Remove(handle)
}

// UpdateTransform installs a new world transform for handle, valid for any
// Kind. Unknown handles return oerror.ErrUnknownHandle.
func (r *Registry) UpdateTransform(handle int32, transform mgl32.Mat4) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	env, ok := r.envs[handle]
	if !ok {
		return oerror.ErrUnknownHandle
	}
	env.UpdateTransform(transform)
	return nil
}

// RotateKinematicHistory advances every kinematic environment's transform
// history at a tick boundary. Called once per tick by the locomotion core,
// at the end of the tick, after it has applied that tick's platform-follow
// delta.
func (r *Registry) RotateKinematicHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, env := range r.envs {
		env.RotateHistory()
	}
}

// Delta returns the rigid transform describing handle's motion since the
// last tick boundary, or the identity if handle is unknown or static.
func (r *Registry) Delta(handle int32) mgl32.Mat4 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	env, ok := r.envs[handle]
	if !ok || env.Kind != KindKinematic {
		return mgl32.Ident4()
	}
	return env.Delta()
}

// Hit is a single-environment intersection result, in world space.
type Hit struct {
	Handle int32
	Dist   float32
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// QueryRay casts a world-space ray against every environment and returns the
// closest hit, if any. It transforms the ray into each environment's local
// space using the cached inverse, traverses that environment's BVH, and
// reports the winning hit back in world space.
func (r *Registry) QueryRay(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best Hit
	found := false
	for _, env := range r.envs {
		localOrigin := env.ToLocal(origin)
		localDir := env.ToLocalDir(dir).Normalize()

		var hit rayHit
		env.bvh.raycast(env.tris, localOrigin, localDir, maxDist, &hit)
		if hit.dist == 0 {
			continue
		}
		worldPoint := env.ToWorld(hit.point)
		dist := worldPoint.Sub(origin).Len()
		if !found || dist < best.Dist {
			best = Hit{Handle: env.Handle, Dist: dist, Point: worldPoint, Normal: env.ToWorldNormal(hit.normal)}
			found = true
		}
	}
	return best, found
}

// QueryEnvironments returns every environment for which overlaps reports
// true, or every environment when overlaps is nil. The trajectory sampler
// passes a world-AABB overlap test here as its prefilter.
func (r *Registry) QueryEnvironments(overlaps func(env *Environment) bool) []*Environment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Filter(lo.Values(r.envs), func(env *Environment, _ int) bool {
		return overlaps == nil || overlaps(env)
	})
}

// Environment returns the environment registered under handle, if any.
func (r *Registry) Environment(handle int32) (*Environment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	env, ok := r.envs[handle]
	return env, ok
}

// Handles returns every currently-tracked handle.
func (r *Registry) Handles() []int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tracked.List()
}

// Checksum returns a fast, order-independent hash of the registry's
// transforms, useful for host-side desync detection in the example harness.
func (r *Registry) Checksum() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var acc uint64
	buf := make([]byte, 4)
	for handle, env := range r.envs {
		h := xxh3.New()
		binary.LittleEndian.PutUint32(buf, uint32(handle))
		h.Write(buf)

		row := env.transform
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(row[i]))
			h.Write(buf)
		}
		acc ^= h.Sum64()
	}
	return acc
}
