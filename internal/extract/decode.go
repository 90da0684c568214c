// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw page bytes to a valid UTF-8 string. The encoding is
// taken from a byte order mark or <meta charset>; undeclared pages are read
// as UTF-8 rather than the Windows-1252 guess. Bytes that do not decode are
// dropped.
func Decode(data []byte) string {
	enc, name, certain := charset.DetermineEncoding(data, "text/html")
	guessed := name == "windows-1252" && !certain
	if name != "utf-8" && !guessed {
		if out, _, err := transform.Bytes(enc.NewDecoder(), data); err == nil {
			data = out
		}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	return strings.ToValidUTF8(string(data), "")
}
