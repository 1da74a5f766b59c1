package transport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"

	"github.com/felixtrz/immersive-web-sdk/geometry"
	"github.com/felixtrz/immersive-web-sdk/oerror"
	"github.com/felixtrz/immersive-web-sdk/player"
)

// DecodeInit reads the Init hot-path message's position payload.
func DecodeInit(msg HotPath) (mgl32.Vec3, error) {
	if len(msg) < 4 {
		return mgl32.Vec3{}, fmt.Errorf("transport: Init message too short")
	}
	return mgl32.Vec3{msg[1], msg[2], msg[3]}, nil
}

// DecodeSlide reads the Slide hot-path message's desired horizontal
// velocity.
func DecodeSlide(msg HotPath) (player.Slide, error) {
	if len(msg) < 4 {
		return player.Slide{}, fmt.Errorf("transport: Slide message too short")
	}
	return player.Slide{V: mgl32.Vec3{msg[1], msg[2], msg[3]}}, nil
}

// DecodeTeleport reads the Teleport hot-path message's target.
func DecodeTeleport(msg HotPath) (player.Teleport, error) {
	if len(msg) < 4 {
		return player.Teleport{}, fmt.Errorf("transport: Teleport message too short")
	}
	return player.Teleport{P: mgl32.Vec3{msg[1], msg[2], msg[3]}}, nil
}

// DecodeParabolicRaycast reads the ParabolicRaycast hot-path message's
// origin and direction*speed.
func DecodeParabolicRaycast(msg HotPath) (player.ParabolicRaycast, error) {
	if len(msg) < 7 {
		return player.ParabolicRaycast{}, fmt.Errorf("transport: ParabolicRaycast message too short")
	}
	return player.ParabolicRaycast{
		Origin: mgl32.Vec3{msg[1], msg[2], msg[3]},
		Dir:    mgl32.Vec3{msg[4], msg[5], msg[6]},
	}, nil
}

// DecodeUpdateKinematicEnvironment reads the handle and 16-float world
// matrix from an UpdateKinematicEnvironment hot-path message.
func DecodeUpdateKinematicEnvironment(msg HotPath) (int32, mgl32.Mat4, error) {
	if len(msg) < 18 {
		return 0, mgl32.Mat4{}, fmt.Errorf("transport: UpdateKinematicEnvironment message too short")
	}
	handle := int32(msg[1])
	var m mgl32.Mat4
	copy(m[:], msg[2:18])
	return handle, m, nil
}

var zstdDecoder, _ = zstd.NewReader(nil)

// DecodeAddEnvironment turns an AddEnvironmentPayload into the arguments
// Registry.Add expects, transparently zstd-decompressing Positions/Indices
// when the host sent them compressed (spec's "large AddEnvironment
// payload" case — the geometry registry has no opinion on wire compression,
// so this is handled entirely in the transport layer).
func DecodeAddEnvironment(p AddEnvironmentPayload) (verts []mgl32.Vec3, indices []uint32, kind geometry.Kind, matrix mgl32.Mat4, err error) {
	positions := p.Positions
	if p.CompressedPositions != nil {
		raw, decErr := zstdDecoder.DecodeAll(p.CompressedPositions, nil)
		if decErr != nil {
			return nil, nil, 0, mgl32.Mat4{}, oerror.Wrap(decErr, "transport: decompress positions")
		}
		positions = bytesToFloat32(raw)
	}

	idx := p.Indices
	if p.CompressedIndices != nil {
		raw, decErr := zstdDecoder.DecodeAll(p.CompressedIndices, nil)
		if decErr != nil {
			return nil, nil, 0, mgl32.Mat4{}, oerror.Wrap(decErr, "transport: decompress indices")
		}
		idx = bytesToUint32(raw)
	}

	if len(positions)%3 != 0 {
		return nil, nil, 0, mgl32.Mat4{}, fmt.Errorf("transport: AddEnvironment positions length %d not a multiple of 3", len(positions))
	}
	verts = make([]mgl32.Vec3, len(positions)/3)
	for i := range verts {
		verts[i] = mgl32.Vec3{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}

	switch p.Kind {
	case "kinematic":
		kind = geometry.KindKinematic
	default:
		kind = geometry.KindStatic
	}

	copy(matrix[:], p.WorldMatrix[:])
	return verts, idx, kind, matrix, nil
}

// CompressPositions zstd-compresses a flat position array, mirroring what a
// host would do before sending a large mesh over KindAddEnvironment.
func CompressPositions(positions []float32) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(float32ToBytes(positions), nil), nil
}

func float32ToBytes(vals []float32) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(len(vals) * 4)
	for _, v := range vals {
		_ = binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func bytesToFloat32(raw []byte) []float32 {
	out := make([]float32, len(raw)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out
}

func bytesToUint32(raw []byte) []uint32 {
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return out
}
