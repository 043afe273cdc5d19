// Package symbol ties the metadata, datamap, payload and textdemux
// packages together into the end-to-end decode of one symbol: a master
// carrying its own metadata and payload, optionally docked to slaves that
// share the master's mask type and color count.
package symbol

import (
	"fmt"

	"github.com/fournarakis/jabcode/datamap"
	jaberrors "github.com/fournarakis/jabcode/errors"
	"github.com/fournarakis/jabcode/matrix"
	"github.com/fournarakis/jabcode/metadata"
	"github.com/fournarakis/jabcode/payload"
	"github.com/fournarakis/jabcode/textdemux"
)

// Decoded is one symbol's fully decoded content: its parsed metadata and
// the text message recovered from its payload.
type Decoded struct {
	Metadata metadata.Metadata
	Message  []byte
}

// DecodeMaster decodes a master symbol end to end: it builds the data map
// for m's dimensions, scans and parses master metadata, then runs the
// payload pipeline and text demultiplexer over whatever is left.
func DecodeMaster(m *matrix.Matrix) (Decoded, error) {
	dataMap := datamap.Build(m.Width, m.Height, datamap.Master)

	meta, status := metadata.DecodeMaster(m, dataMap)
	if err := jaberrors.FromStatus(status); err != nil {
		return Decoded{}, err
	}

	colorNumber := meta.ColorNumber
	if colorNumber == 0 || len(meta.Palette1) < colorNumber {
		return Decoded{}, fmt.Errorf("%w: empty palette after metadata decode", jaberrors.ErrFatal)
	}

	info, err := payload.Decode(m, dataMap, payload.Params{
		Palette1:    meta.Palette1,
		Palette2:    meta.Palette2,
		ColorNumber: colorNumber,
		MaskType:    meta.Metadata.MaskType,
		WC:          meta.Metadata.ECL.WC,
		WR:          meta.Metadata.ECL.WR,
	})
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %v", jaberrors.ErrPayloadDecodeFailed, err)
	}

	message, err := textdemux.Decode(info)
	if err != nil {
		return Decoded{}, err
	}

	return Decoded{Metadata: meta.Metadata, Message: message}, nil
}

// DecodeSlave decodes a slave symbol docked to an already-decoded host at
// hostPosition (0-3), always inheriting the host's mask type and color
// count.
func DecodeSlave(m *matrix.Matrix, host metadata.Metadata, hostPosition int) (Decoded, error) {
	dataMap := datamap.Build(m.Width, m.Height, datamap.Slave)

	meta, status := metadata.DecodeSlave(m, dataMap, host, hostPosition)
	if err := jaberrors.FromStatus(status); err != nil {
		return Decoded{}, err
	}

	colorNumber := meta.ColorNumber
	if colorNumber == 0 || len(meta.Palette) < colorNumber {
		return Decoded{}, fmt.Errorf("%w: empty palette after metadata decode", jaberrors.ErrFatal)
	}

	info, err := payload.Decode(m, dataMap, payload.Params{
		Palette1:    meta.Palette,
		ColorNumber: colorNumber,
		MaskType:    meta.Metadata.MaskType,
		WC:          meta.Metadata.ECL.WC,
		WR:          meta.Metadata.ECL.WR,
	})
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %v", jaberrors.ErrPayloadDecodeFailed, err)
	}

	message, err := textdemux.Decode(info)
	if err != nil {
		return Decoded{}, err
	}

	return Decoded{Metadata: meta.Metadata, Message: message}, nil
}
