package export

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The raster engine chokes on modern CSS color functions, so style
// declarations are rewritten to plain rgb() triplets before rasterization.
// oklch()/oklab() values get a real colorimetric conversion; the remaining
// modern functions are rare enough here that a neutral gray substitute is
// acceptable. This is a compatibility shim for the rasterizer, not a
// rendering feature.

var (
	oklchPattern = regexp.MustCompile(`(?i)oklch\(([^)]*)\)`)
	oklabPattern = regexp.MustCompile(`(?i)oklab\(([^)]*)\)`)
	otherPattern = regexp.MustCompile(`(?i)\b(?:lab|lch|color)\(([^)]*)\)`)

	styleBlockPattern = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	styleAttrPattern  = regexp.MustCompile(`(?i)style="[^"]*"`)
)

const fallbackColor = "rgb(96, 96, 96)"

// SanitizeColors rewrites unsupported color functions in an HTML document's
// style blocks and style attributes into rgb() triplets the rasterizer can
// parse. Document text is never touched: a resume mentioning lab() in a
// project description must render verbatim.
func SanitizeColors(html string) string {
	html = styleBlockPattern.ReplaceAllStringFunc(html, sanitizeDeclarations)
	return styleAttrPattern.ReplaceAllStringFunc(html, sanitizeDeclarations)
}

func sanitizeDeclarations(css string) string {
	css = oklchPattern.ReplaceAllStringFunc(css, func(match string) string {
		args := oklchPattern.FindStringSubmatch(match)[1]
		if rgb, ok := oklchToRGB(args); ok {
			return rgb
		}
		return fallbackColor
	})
	css = oklabPattern.ReplaceAllStringFunc(css, func(match string) string {
		args := oklabPattern.FindStringSubmatch(match)[1]
		if rgb, ok := oklabToRGB(args); ok {
			return rgb
		}
		return fallbackColor
	})
	return otherPattern.ReplaceAllString(css, fallbackColor)
}

func oklchToRGB(args string) (string, bool) {
	vals, ok := colorArgs(args, 3)
	if !ok {
		return "", false
	}
	l, c, hdeg := vals[0], vals[1], vals[2]
	h := hdeg * math.Pi / 180
	return oklabTriplet(l, c*math.Cos(h), c*math.Sin(h)), true
}

func oklabToRGB(args string) (string, bool) {
	vals, ok := colorArgs(args, 3)
	if !ok {
		return "", false
	}
	return oklabTriplet(vals[0], vals[1], vals[2]), true
}

// colorArgs parses the first n numeric components, accepting space or comma
// separators, a percent sign on the first component, and ignoring any
// "/ alpha" suffix (rgb() output drops alpha).
func colorArgs(args string, n int) ([]float64, bool) {
	if i := strings.Index(args, "/"); i >= 0 {
		args = args[:i]
	}
	fields := strings.FieldsFunc(args, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f := fields[i]
		percent := strings.HasSuffix(f, "%")
		f = strings.TrimSuffix(f, "%")
		f = strings.TrimSuffix(f, "deg")
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		if percent && i == 0 {
			v /= 100
		}
		out[i] = v
	}
	return out, true
}

// oklabTriplet converts OKLab coordinates to an sRGB rgb() string using the
// reference OKLab matrices, clamping out-of-gamut channels.
func oklabTriplet(l, a, b float64) string {
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l3, m3, s3 := l_*l_*l_, m_*m_*m_, s_*s_*s_

	r := 4.0767416621*l3 - 3.3077115913*m3 + 0.2309699292*s3
	g := -1.2684380046*l3 + 2.6097574011*m3 - 0.3413193965*s3
	bl := -0.0041960863*l3 - 0.7034186147*m3 + 1.7076147010*s3

	return fmt.Sprintf("rgb(%d, %d, %d)", channel(r), channel(g), channel(bl))
}

func channel(lin float64) int {
	var c float64
	if lin <= 0.0031308 {
		c = 12.92 * lin
	} else {
		c = 1.055*math.Pow(lin, 1/2.4) - 0.055
	}
	c = math.Min(1, math.Max(0, c))
	return int(math.Round(c * 255))
}
