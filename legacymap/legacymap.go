// Package legacymap converts legacy binary block maps (.blm) into Lua scenes.
package legacymap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/akmonengine/blockgame/trail"
)

// RecordSize is the encoded size of one block: seven little-endian float32 and a uint32 color
const RecordSize = 32

// GemHeight is how far above the first block the goal gem floats
const GemHeight = 0.4

// Block is one legacy map record. Sizes are half-extents on the ground plane,
// Height is the full height. Rotation is about Y, in degrees.
type Block struct {
	PosZ     float32
	PosX     float32
	SizeX    float32
	SizeZ    float32
	Height   float32
	Bottom   float32
	Rotation float32
	// Color is stored as 0xBBGGRR
	Color uint32
}

// Decode parses a map. A trailing partial record is ignored.
func Decode(data []byte) ([]Block, error) {
	blocks := make([]Block, len(data)/RecordSize)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, blocks); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	return blocks, nil
}

// RecordName derives the trail record of a scene from its file name: the
// base name without extension, plus ".rec".
func RecordName(scenePath string) (string, error) {
	base := filepath.Base(scenePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".rec"
	if err := trail.ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// RGB swaps a legacy 0xBBGGRR color to 0xRRGGBB
func RGB(color uint32) uint32 {
	return (color>>16)&0xff | color&0xff00 | (color&0xff)<<16
}

const placeBlock = "place_block({pos={%5.1f,%5.1f,%5.1f}, size={%4.1f,%4.1f,%4.1f}, color=0x%06x})"

// Convert writes the scene for blocks. The gem goes on top of the first block.
// Quarter turns are baked in by swapping X and Z, other angles become a
// rotate_block call.
func Convert(w io.Writer, blocks []Block, record string) error {
	for i, b := range blocks {
		sizeY := float64(b.Height) / 2
		posY := float64(b.Bottom) + sizeY
		posX, posZ := float64(b.PosX), float64(b.PosZ)
		sizeX, sizeZ := float64(b.SizeX), float64(b.SizeZ)
		color := RGB(b.Color)

		if i == 0 {
			_, err := fmt.Fprintf(w, "place_gem({pos={%.1f,%.1f,%.1f}, record=%q})\n",
				posX, posY+sizeY+GemHeight, posZ, record)
			if err != nil {
				return err
			}
		}

		rotation := math.Mod(float64(b.Rotation), 180)
		if rotation < 0 {
			rotation += 180
		}

		var err error
		switch {
		case math.Abs(rotation-90) < 0.1:
			_, err = fmt.Fprintf(w, placeBlock+"\n", posZ, posY, posX, sizeZ, sizeY, sizeX, color)
		case rotation > 0.1 && rotation < 179.9:
			_, err = fmt.Fprintf(w, "block = "+placeBlock+"; rotate_block(block, {angle=%5.1f})\n",
				posX, posY, posZ, sizeX, sizeY, sizeZ, color, rotation)
		default:
			_, err = fmt.Fprintf(w, placeBlock+"\n", posX, posY, posZ, sizeX, sizeY, sizeZ, color)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
