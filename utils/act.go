package utils

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/setanarut/repix"
)

// actBody is the fixed 256-entry RGB block of an Adobe Color Table
// file; an optional 4-byte big-endian trailer carries the defined
// color count and the transparency index.
const actBody = 256 * 3

// LoadColorTable parses an Adobe Color Table (.act) file. An
// unreadable file is an error; a readable but malformed one yields an
// empty table with a warning, which downstream treats as "no palette
// mapping requested".
func LoadColorTable(path string) (*repix.ColorTable, error) {
	table := repix.NewColorTable()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading color table: %w", err)
	}
	if len(data) < actBody {
		log.Printf("palette warning: %s is too short for an Adobe color table, ignoring", path)
		return table, nil
	}

	defined := 256
	transparency := -1
	if len(data) >= actBody+4 {
		defined = int(int16(binary.BigEndian.Uint16(data[actBody:])))
		transparency = int(int16(binary.BigEndian.Uint16(data[actBody+2:])))
	}
	if defined < 0 {
		defined = 0
	}
	if defined > 256 {
		defined = 256
	}
	if transparency >= defined {
		transparency = -1
	}

	for n := 0; n < defined; n++ {
		r := uint32(data[n*3])
		g := uint32(data[n*3+1])
		b := uint32(data[n*3+2])
		table.Colors[n] = 0xFF000000 | r<<16 | g<<8 | b
	}
	table.Defined = defined
	table.Transparency = transparency
	return table, nil
}

// SaveColorTable writes a table back out as a 772-byte Adobe Color
// Table with the defined count and transparency trailer.
func SaveColorTable(table *repix.ColorTable, path string) error {
	if table.Empty() {
		return fmt.Errorf("empty color table")
	}
	data := make([]byte, actBody+4)
	for n := 0; n < table.Defined; n++ {
		c := table.Colors[n]
		data[n*3] = byte(c >> 16)
		data[n*3+1] = byte(c >> 8)
		data[n*3+2] = byte(c)
	}
	binary.BigEndian.PutUint16(data[actBody:], uint16(table.Defined))
	transparency := table.Transparency
	if transparency < 0 {
		transparency = -1
	}
	binary.BigEndian.PutUint16(data[actBody+2:], uint16(int16(transparency)))
	return os.WriteFile(path, data, 0o644)
}
