// Package xmlenc supplies a lenient CharsetReader for XML artifacts whose
// declarations name encodings the stdlib decoder does not handle itself.
package xmlenc

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// CharsetReader decodes the charsets test tooling commonly declares.
// Unrecognized charsets fall back to a pass-through read rather than an
// error; a wrongly-decoded artifact degrades to an empty contribution
// downstream instead of aborting the run.
func CharsetReader(charset string, input io.Reader) (io.Reader, error) {
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "utf-16", "utf16":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16le":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be":
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "iso-8859-1", "latin1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return input, nil
	}
	return enc.NewDecoder().Reader(input), nil
}
