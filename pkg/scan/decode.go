package scan

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw source bytes to a string with a best-effort
// ladder: BOM-marked UTF-16 (either endian), then UTF-8, then a lossy
// Latin-1 fallback. It never fails; at worst, invalid bytes are dropped.
func DecodeText(raw []byte) string {
	if len(raw) >= 2 {
		first, second := raw[0], raw[1]
		if (first == 0xFF && second == 0xFE) || (first == 0xFE && second == 0xFF) {
			dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
			if out, _, err := transform.Bytes(dec, raw); err == nil {
				return string(out)
			}
		}
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw)
	}

	if out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw); err == nil {
		return string(out)
	}
	return strings.ToValidUTF8(string(raw), "")
}
