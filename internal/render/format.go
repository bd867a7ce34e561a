package render

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

// FormatAmount renders a whole-unit amount with thousands separators.
func FormatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Won prefixes an amount with the currency mark used across all layouts.
func Won(n int64) string { return "₩ " + FormatAmount(n) }

func lineNo(index int) string { return fmt.Sprintf("%02d", index+1) }

// decodeDataURL extracts embedded image bytes from a data URL. Externally
// hosted references return ok=false; fetching them would be I/O, which the
// renderer does not perform.
func decodeDataURL(ref string) (data []byte, ext extension.Type, ok bool) {
	if !strings.HasPrefix(ref, "data:image/") {
		return nil, "", false
	}
	rest := strings.TrimPrefix(ref, "data:image/")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return nil, "", false
	}
	switch rest[:semi] {
	case "png":
		ext = extension.Png
	case "jpeg", "jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}
	raw, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return nil, "", false
	}
	return raw, ext, true
}
