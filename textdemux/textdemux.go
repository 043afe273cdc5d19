// Package textdemux implements the mode-switched text demultiplexer that
// turns the net information bits payload.Decode recovers into a byte
// message, mirroring decoder.c's decodeData state machine: a small set of
// character modes (Upper, Lower, Numeric, Punctuation, Mixed, Alphanumeric,
// Byte) share one bitstream, switching between each other via short escape
// codes instead of each byte carrying its own fixed width.
package textdemux

import "fmt"

// Mode identifies which character set the demultiplexer is currently
// reading values against.
type Mode int

const (
	ModeNone Mode = iota
	ModeUpper
	ModeLower
	ModeNumeric
	ModePunct
	ModeMixed
	ModeAlphanumeric
	ModeByte
	ModeECI
	ModeFNC1
)

// characterSize is the number of bits decodeValue reads per character while
// in a given mode, before any mode-specific escape widens that read. Byte
// mode is handled separately since its field widths vary (4, then
// optionally 13, then 8 per payload byte) and never goes through this table.
var characterSize = [...]int{
	ModeNone:         0,
	ModeUpper:        5,
	ModeLower:        5,
	ModeNumeric:      4,
	ModePunct:        4,
	ModeMixed:        5,
	ModeAlphanumeric: 6,
	ModeByte:         0,
	ModeECI:          0,
	ModeFNC1:         0,
}

// decodingTableUpper maps a 5-bit Upper-mode value (0-26) to its byte; 0 is
// space and 1-26 are 'A'-'Z'. Values 27-31 are mode-switch escapes handled
// separately.
var decodingTableUpper = buildLetterTable(' ', 'A')

// decodingTableLower mirrors decodingTableUpper for lowercase letters.
var decodingTableLower = buildLetterTable(' ', 'a')

func buildLetterTable(space, first byte) [27]byte {
	var t [27]byte
	t[0] = space
	for i := 1; i <= 26; i++ {
		t[i] = first + byte(i-1)
	}
	return t
}

// decodingTableNumeric maps a 4-bit Numeric-mode value (0-12) to its byte:
// digits 0-9 followed by comma, full stop, and space.
var decodingTableNumeric = [13]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ',', '.', ' '}

// decodingTablePunct maps a 4-bit Punctuation-mode value (0-15) to its byte.
var decodingTablePunct = [16]byte{
	'\r', '\n', '\t', '!', '"', '#', '$', '%',
	'&', '\'', '(', ')', '*', '+', '-', '/',
}

// decodingTableMixed maps a 5-bit Mixed-mode value (0-31) to its byte.
// Values 19-22 instead emit two bytes each (handled inline in Decode) and
// are placeholders here.
var decodingTableMixed = [32]byte{
	0: ':', 1: ';', 2: '<', 3: '=', 4: '>', 5: '?', 6: '@',
	7: '[', 8: '\\', 9: ']', 10: '^', 11: '_', 12: '`',
	13: '{', 14: '|', 15: '}', 16: '~', 17: 0x7f, 18: 0,
	19: 0, 20: 0, 21: 0, 22: 0,
	23: '0', 24: '1', 25: '2', 26: '3', 27: '4', 28: '5', 29: '6', 30: '7', 31: '8',
}

// decodingTableAlphanumeric maps a 6-bit Alphanumeric-mode value (0-62) to
// its byte: digits, uppercase letters, then a handful of symbols.
var decodingTableAlphanumeric = buildAlphanumericTable()

func buildAlphanumericTable() [63]byte {
	var t [63]byte
	i := 0
	for c := byte('0'); c <= '9'; c++ {
		t[i] = c
		i++
	}
	for c := byte('A'); c <= 'Z'; c++ {
		t[i] = c
		i++
	}
	extra := []byte{' ', '.', ',', '-', '/', ':', '+'}
	for _, c := range extra {
		if i < len(t) {
			t[i] = c
			i++
		}
	}
	return t
}

// readBits reads length bits starting at start from bits (one bit per
// byte, MSB-first within the field) into a single big-endian integer, the
// same as decoder.c's readData. It returns how many bits were actually
// available, which is less than length only when the stream runs out.
func readBits(bits []byte, start, length int) (value, n int) {
	for i := start; i < start+length && i < len(bits); i++ {
		value += int(bits[i]) << uint(length-1-(i-start))
		n++
	}
	return value, n
}

// Decode interprets a net information bitstream (one bit per byte, as
// produced by payload.Decode and the LDPC decoder) according to the mode
// switching rules above and returns the recovered message bytes.
func Decode(bits []byte) ([]byte, error) {
	out := make([]byte, 0, len(bits)/4)
	mode := ModeUpper
	preMode := ModeNone
	index := 0

	for index < len(bits) {
		var value, n int
		if mode != ModeByte {
			n = characterSize[mode]
			value, n = readBits(bits, index, n)
			if n < characterSize[mode] {
				break
			}
			index += characterSize[mode]
		}

		truncated := false

		switch mode {
		case ModeUpper:
			if value <= 26 {
				out = append(out, decodingTableUpper[value])
				if preMode != ModeNone {
					mode = preMode
				}
			} else {
				switch value {
				case 27:
					mode, preMode = ModePunct, ModeUpper
				case 28:
					mode, preMode = ModeLower, ModeNone
				case 29:
					mode, preMode = ModeNumeric, ModeNone
				case 30:
					mode, preMode = ModeAlphanumeric, ModeNone
				case 31:
					var esc int
					esc, n = readBits(bits, index, 2)
					if n < 2 {
						truncated = true
						break
					}
					index += 2
					mode, preMode = escapeFrom(ModeUpper, esc)
				default:
					return nil, fmt.Errorf("textdemux: invalid value %d in upper mode", value)
				}
			}
		case ModeLower:
			if value <= 26 {
				out = append(out, decodingTableLower[value])
				if preMode != ModeNone {
					mode = preMode
				}
			} else {
				switch value {
				case 27:
					mode, preMode = ModePunct, ModeLower
				case 28:
					mode, preMode = ModeUpper, ModeLower
				case 29:
					mode, preMode = ModeNumeric, ModeNone
				case 30:
					mode, preMode = ModeAlphanumeric, ModeNone
				case 31:
					var esc int
					esc, n = readBits(bits, index, 2)
					if n < 2 {
						truncated = true
						break
					}
					index += 2
					switch esc {
					case 0:
						mode, preMode = ModeByte, ModeLower
					case 1:
						mode, preMode = ModeMixed, ModeLower
					case 2:
						mode, preMode = ModeUpper, ModeNone
					case 3:
						truncated = true // explicit end-of-message escape
					}
				default:
					return nil, fmt.Errorf("textdemux: invalid value %d in lower mode", value)
				}
			}
		case ModeNumeric:
			if value <= 12 {
				out = append(out, decodingTableNumeric[value])
				if preMode != ModeNone {
					mode = preMode
				}
			} else {
				switch value {
				case 13:
					mode, preMode = ModePunct, ModeNumeric
				case 14:
					mode, preMode = ModeUpper, ModeNone
				case 15:
					var esc int
					esc, n = readBits(bits, index, 2)
					if n < 2 {
						truncated = true
						break
					}
					index += 2
					switch esc {
					case 0:
						mode, preMode = ModeByte, ModeNumeric
					case 1:
						mode, preMode = ModeMixed, ModeNumeric
					case 2:
						mode, preMode = ModeUpper, ModeNumeric
					case 3:
						mode, preMode = ModeLower, ModeNone
					}
				default:
					return nil, fmt.Errorf("textdemux: invalid value %d in numeric mode", value)
				}
			}
		case ModePunct:
			if value >= 0 && value <= 15 {
				out = append(out, decodingTablePunct[value])
				mode = preMode
			} else {
				return nil, fmt.Errorf("textdemux: invalid value %d in punctuation mode", value)
			}
		case ModeMixed:
			if value >= 0 && value <= 31 {
				switch value {
				case 19:
					out = append(out, '\n', '\r')
				case 20:
					out = append(out, ',', ' ')
				case 21:
					out = append(out, '.', ' ')
				case 22:
					out = append(out, ':', ' ')
				default:
					out = append(out, decodingTableMixed[value])
				}
				mode = preMode
			} else {
				return nil, fmt.Errorf("textdemux: invalid value %d in mixed mode", value)
			}
		case ModeAlphanumeric:
			if value <= 62 {
				out = append(out, decodingTableAlphanumeric[value])
				if preMode != ModeNone {
					mode = preMode
				}
			} else if value == 63 {
				var esc int
				esc, n = readBits(bits, index, 2)
				if n < 2 {
					truncated = true
					break
				}
				index += 2
				switch esc {
				case 0:
					mode, preMode = ModeByte, ModeAlphanumeric
				case 1:
					mode, preMode = ModeMixed, ModeAlphanumeric
				case 2:
					mode, preMode = ModePunct, ModeAlphanumeric
				case 3:
					mode, preMode = ModeUpper, ModeNone
				}
			} else {
				return nil, fmt.Errorf("textdemux: invalid value %d in alphanumeric mode", value)
			}
		case ModeByte:
			byteLength, ok, err := readByteLength(bits, &index)
			if err != nil {
				return nil, err
			}
			if !ok {
				truncated = true
				break
			}
			for i := 0; i < byteLength; i++ {
				v, n := readBits(bits, index, 8)
				if n < 8 {
					return nil, fmt.Errorf("textdemux: not enough bits to decode byte-mode data")
				}
				index += 8
				out = append(out, byte(v))
			}
			mode = preMode
		case ModeECI, ModeFNC1:
			// neither is implemented by this decoder; skip the remainder of
			// the stream rather than misinterpret it as another mode.
			index = len(bits)
		case ModeNone:
			return nil, fmt.Errorf("textdemux: decoding mode is None")
		}

		if truncated {
			break
		}
	}

	return out, nil
}

// escapeFrom resolves the two-bit escape code shared by Upper's case 31
// (Byte/Mixed/ECI/FNC1), returning the new mode and the pre_mode to
// restore to once that mode emits its next single character.
func escapeFrom(from Mode, esc int) (mode, preMode Mode) {
	switch esc {
	case 0:
		return ModeByte, from
	case 1:
		return ModeMixed, from
	case 2:
		return ModeECI, ModeNone
	case 3:
		return ModeFNC1, ModeNone
	}
	return ModeNone, ModeNone
}

// readByteLength parses Byte mode's variable-length prefix: a 4-bit field
// giving the byte count directly (1-15), or 0 followed by 13 more bits
// giving byte count - 16. index is advanced past whatever it reads.
func readByteLength(bits []byte, index *int) (length int, ok bool, err error) {
	value, n := readBits(bits, *index, 4)
	if n < 4 {
		return 0, false, nil
	}
	*index += 4
	if value == 0 {
		extra, n := readBits(bits, *index, 13)
		if n < 13 {
			return 0, false, nil
		}
		*index += 13
		return extra + 16, true, nil
	}
	return value, true, nil
}
