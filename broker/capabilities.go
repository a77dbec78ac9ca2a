package broker

import "strings"

// ProviderType identifies one of the four provider families.
type ProviderType string

const (
	ProviderGoogle     ProviderType = "google"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderCustom     ProviderType = "custom"
)

// Category is a model's declared role in auto-mode selection.
type Category string

const (
	CategoryFast              Category = "fast"
	CategoryBalanced          Category = "balanced"
	CategoryReasoning         Category = "reasoning"
	CategoryExtendedReasoning Category = "extendedReasoning"
	CategoryVision            Category = "vision"
)

// ImageFormat is one of the image encodings a vision-capable model may
// accept.
type ImageFormat string

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"
	ImageGIF  ImageFormat = "gif"
	ImageWebP ImageFormat = "webp"
)

// TemperaturePolicyKind distinguishes how a model's temperature parameter
// is validated and corrected.
type TemperaturePolicyKind string

const (
	TempRange    TemperaturePolicyKind = "range"
	TempFixed    TemperaturePolicyKind = "fixed"
	TempDiscrete TemperaturePolicyKind = "discrete"
)

// TemperaturePolicy validates and corrects a caller-supplied temperature
// per model. For Fixed policies, temperature is dropped from the wire
// request entirely (see Providers, §4.5/§4.6).
type TemperaturePolicy struct {
	Kind     TemperaturePolicyKind
	Lo, Hi   float64   // Range
	Fixed    float64   // Fixed
	Discrete []float64 // Discrete
}

// Validate returns the value to actually send (or to omit, for Fixed) and
// whether a correction was applied.
func (p TemperaturePolicy) Validate(requested float64) (corrected float64, changed bool) {
	switch p.Kind {
	case TempFixed:
		return p.Fixed, requested != p.Fixed
	case TempRange:
		if requested < p.Lo {
			return p.Lo, true
		}
		if requested > p.Hi {
			return p.Hi, true
		}
		return requested, false
	case TempDiscrete:
		best := requested
		bestDist := -1.0
		for _, v := range p.Discrete {
			d := v - requested
			if d < 0 {
				d = -d
			}
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = v
			}
		}
		return best, best != requested
	default:
		return requested, false
	}
}

// ModelCapabilities describes one catalog entry. Invariant: if
// SupportsImages is false, MaxImageBytes == 0 and SupportedImageFormats
// is empty (enforced by NewModelCapabilities).
type ModelCapabilities struct {
	Provider                 ProviderType
	CanonicalName             string
	Aliases                   []string
	ContextTokens             int
	Category                  Category
	SupportsImages            bool
	MaxImageBytes             int64
	SupportedImageFormats     []ImageFormat
	SupportsExtendedThinking  bool
	SupportsSystemPrompt      bool
	SupportsTemperature       bool
	TemperaturePolicy         TemperaturePolicy
}

// NewModelCapabilities constructs a ModelCapabilities, enforcing the
// image-support invariant at the single construction point so every
// catalog entry (static or override-file-loaded) satisfies it.
func NewModelCapabilities(m ModelCapabilities) ModelCapabilities {
	if !m.SupportsImages {
		m.MaxImageBytes = 0
		m.SupportedImageFormats = nil
	}
	return m
}

// HasAlias reports whether name (case-insensitive) is the canonical name
// or a declared alias.
func (m ModelCapabilities) HasAlias(name string) bool {
	lname := strings.ToLower(name)
	if strings.ToLower(m.CanonicalName) == lname {
		return true
	}
	for _, a := range m.Aliases {
		if strings.ToLower(a) == lname {
			return true
		}
	}
	return false
}

// SupportsFormat reports whether fmtName (case-insensitive) is among the
// model's supported image formats.
func (m ModelCapabilities) SupportsFormat(fmtName string) bool {
	lname := strings.ToLower(fmtName)
	for _, f := range m.SupportedImageFormats {
		if string(f) == lname {
			return true
		}
	}
	return false
}
