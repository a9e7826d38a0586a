package trail

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// RecordSize is the encoded size of one sample: three little-endian float32
const RecordSize = 12

// Trail is a recorded sequence of player positions, one per move
type Trail []mgl32.Vec3

// Sample converts a position to trail precision
func Sample(position mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(position.X()), float32(position.Y()), float32(position.Z())}
}

// Encode returns the flat record stream of the trail
func (t Trail) Encode() []byte {
	buf := make([]byte, 0, len(t)*RecordSize)
	for _, p := range t {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.X()))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.Y()))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.Z()))
	}
	return buf
}

// Decode parses a record stream. The length is implied by the data size;
// a trailing partial record is ignored.
func Decode(data []byte) Trail {
	t := make(Trail, len(data)/RecordSize)
	for i := range t {
		record := data[i*RecordSize:]
		t[i] = mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(record[0:])),
			math.Float32frombits(binary.LittleEndian.Uint32(record[4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(record[8:])),
		}
	}
	return t
}
