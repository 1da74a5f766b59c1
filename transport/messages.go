// Package transport implements the Worker Transport: a single cooperative
// tick loop that exchanges flat, copyable messages with the host and drives
// the locomotion core at a fixed frequency.
package transport

// Kind tags every message crossing the host/worker boundary. Hot-path kinds
// are carried as flat float32 arrays with the kind as element 0; the rest
// are carried as Structured messages.
type Kind int

const (
	KindInit Kind = iota
	KindConfig
	KindAddEnvironment
	KindRemoveEnvironment
	KindUpdateKinematicEnvironment
	KindSlide
	KindTeleport
	KindJump
	KindParabolicRaycast
	KindPositionUpdate
	KindRaycastUpdate
)

// HotPath is a flat numeric message: index 0 is the Kind tag (as float32),
// subsequent slots are payload fields. Used for Init, Slide, Teleport,
// Jump, ParabolicRaycast, UpdateKinematicEnvironment, and both outbound
// update kinds — the high-frequency traffic spec 4.5 calls out for a
// zero-allocation, order-preserving wire shape.
type HotPath []float32

func (h HotPath) Kind() Kind { return Kind(h[0]) }

// Structured carries the lower-frequency, variable-shape messages: Config
// and AddEnvironment/RemoveEnvironment.
type Structured struct {
	Kind    Kind
	Payload interface{}
}

// ConfigPayload is the Structured payload for KindConfig.
type ConfigPayload map[string]interface{}

// AddEnvironmentPayload is the Structured payload for KindAddEnvironment.
// Positions/Indices may be zstd-compressed on the wire by the host for large
// meshes; DecodeAddEnvironment handles both forms transparently.
type AddEnvironmentPayload struct {
	Handle      int32
	Positions   []float32
	Indices     []uint32
	Kind        string // "static" | "kinematic"
	WorldMatrix [16]float32

	// CompressedPositions/CompressedIndices, when non-nil, are zstd frames
	// that decode to Positions/Indices respectively.
	CompressedPositions []byte
	CompressedIndices   []byte
}

// RemoveEnvironmentPayload is the Structured payload for
// KindRemoveEnvironment.
type RemoveEnvironmentPayload struct {
	Handle int32
}

func makeHotPath(kind Kind, fields ...float32) HotPath {
	msg := make(HotPath, 1+len(fields))
	msg[0] = float32(kind)
	copy(msg[1:], fields)
	return msg
}

// EncodePositionUpdate builds the PositionUpdate hot-path message: position
// (3 floats), grounded (0/1).
func EncodePositionUpdate(x, y, z float32, grounded bool) HotPath {
	g := float32(0)
	if grounded {
		g = 1
	}
	return makeHotPath(KindPositionUpdate, x, y, z, g)
}

// EncodeRaycastUpdate builds the RaycastUpdate hot-path message: hit point
// (3 floats, NaN on miss), normal (3 floats, NaN on miss).
func EncodeRaycastUpdate(hit bool, point, normal [3]float32) HotPath {
	if !hit {
		nan := float32NaN()
		return makeHotPath(KindRaycastUpdate, nan, nan, nan, nan, nan, nan)
	}
	return makeHotPath(KindRaycastUpdate, point[0], point[1], point[2], normal[0], normal[1], normal[2])
}

func float32NaN() float32 {
	var f float32
	return f / f
}
