package broker

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the static, read-only-after-startup table of every known
// model, keyed by canonical name. Alias resolution is case-insensitive.
type Catalog struct {
	entries map[string]ModelCapabilities // canonical name -> capabilities
	order   []string                     // insertion order, for deterministic iteration
}

// NewCatalog builds the catalog from the built-in table plus an optional
// YAML override file (MODEL_CATALOG_FILE), letting a deployer add
// custom-provider models without a rebuild.
func NewCatalog(overrideFile string) (*Catalog, []string, error) {
	c := &Catalog{entries: make(map[string]ModelCapabilities)}
	var warnings []string
	for _, m := range builtinModels() {
		c.add(m)
	}
	if overrideFile != "" {
		extra, err := loadCatalogOverrides(overrideFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading model catalog override %s: %w", overrideFile, err)
		}
		for _, m := range extra {
			if _, exists := c.entries[strings.ToLower(m.CanonicalName)]; exists {
				warnings = append(warnings, fmt.Sprintf("catalog override redefines %q, replacing built-in entry", m.CanonicalName))
			}
			c.add(m)
		}
	}
	return c, warnings, nil
}

func (c *Catalog) add(m ModelCapabilities) {
	m = NewModelCapabilities(m)
	key := strings.ToLower(m.CanonicalName)
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = m
}

// Resolve performs case-insensitive alias-or-canonical lookup against the
// full catalog (not restricted to any one provider).
func (c *Catalog) Resolve(name string) (ModelCapabilities, bool) {
	lname := strings.ToLower(name)
	if m, ok := c.entries[lname]; ok {
		return m, true
	}
	for _, key := range c.order {
		if c.entries[key].HasAlias(lname) {
			return c.entries[key], true
		}
	}
	return ModelCapabilities{}, false
}

// ForProvider returns every catalog entry belonging to the given
// provider, in stable declaration order.
func (c *Catalog) ForProvider(p ProviderType) []ModelCapabilities {
	var out []ModelCapabilities
	for _, key := range c.order {
		m := c.entries[key]
		if m.Provider == p {
			out = append(out, m)
		}
	}
	return out
}

// All returns every catalog entry in stable declaration order.
func (c *Catalog) All() []ModelCapabilities {
	out := make([]ModelCapabilities, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.entries[key])
	}
	return out
}

type catalogOverrideFile struct {
	Models []catalogOverrideModel `yaml:"models"`
}

type catalogOverrideModel struct {
	Provider                 string   `yaml:"provider"`
	CanonicalName            string   `yaml:"canonicalName"`
	Aliases                  []string `yaml:"aliases"`
	ContextTokens            int      `yaml:"contextTokens"`
	Category                 string   `yaml:"category"`
	SupportsImages           bool     `yaml:"supportsImages"`
	MaxImageBytes            int64    `yaml:"maxImageBytes"`
	SupportedImageFormats    []string `yaml:"supportedImageFormats"`
	SupportsExtendedThinking bool     `yaml:"supportsExtendedThinking"`
	SupportsSystemPrompt     bool     `yaml:"supportsSystemPrompt"`
	SupportsTemperature      bool     `yaml:"supportsTemperature"`
	TemperaturePolicy        struct {
		Kind     string    `yaml:"kind"`
		Lo       float64   `yaml:"lo"`
		Hi       float64   `yaml:"hi"`
		Fixed    float64   `yaml:"fixed"`
		Discrete []float64 `yaml:"discrete"`
	} `yaml:"temperaturePolicy"`
}

func loadCatalogOverrides(path string) ([]ModelCapabilities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file catalogOverrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	out := make([]ModelCapabilities, 0, len(file.Models))
	for _, om := range file.Models {
		var formats []ImageFormat
		for _, f := range om.SupportedImageFormats {
			formats = append(formats, ImageFormat(strings.ToLower(f)))
		}
		out = append(out, ModelCapabilities{
			Provider:                 ProviderType(om.Provider),
			CanonicalName:            om.CanonicalName,
			Aliases:                  om.Aliases,
			ContextTokens:            om.ContextTokens,
			Category:                 Category(om.Category),
			SupportsImages:           om.SupportsImages,
			MaxImageBytes:            om.MaxImageBytes,
			SupportedImageFormats:    formats,
			SupportsExtendedThinking: om.SupportsExtendedThinking,
			SupportsSystemPrompt:     om.SupportsSystemPrompt,
			SupportsTemperature:      om.SupportsTemperature,
			TemperaturePolicy: TemperaturePolicy{
				Kind:     TemperaturePolicyKind(om.TemperaturePolicy.Kind),
				Lo:       om.TemperaturePolicy.Lo,
				Hi:       om.TemperaturePolicy.Hi,
				Fixed:    om.TemperaturePolicy.Fixed,
				Discrete: om.TemperaturePolicy.Discrete,
			},
		})
	}
	return out, nil
}

// builtinModels is the static per-provider table. Context windows and
// capability flags reflect each family's publicly documented models at
// the time of writing; this table is read-only after Catalog construction.
func builtinModels() []ModelCapabilities {
	return []ModelCapabilities{
		{
			Provider: ProviderGoogle, CanonicalName: "gemini-2.5-pro",
			Aliases: []string{"pro", "gemini-pro"}, ContextTokens: 1_048_576,
			Category: CategoryExtendedReasoning, SupportsImages: true, MaxImageBytes: 20 * 1024 * 1024,
			SupportedImageFormats: []ImageFormat{ImagePNG, ImageJPEG, ImageGIF, ImageWebP},
			SupportsExtendedThinking: true, SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 2},
		},
		{
			Provider: ProviderGoogle, CanonicalName: "gemini-2.5-flash",
			Aliases: []string{"flash", "gemini-flash"}, ContextTokens: 1_048_576,
			Category: CategoryBalanced, SupportsImages: true, MaxImageBytes: 20 * 1024 * 1024,
			SupportedImageFormats: []ImageFormat{ImagePNG, ImageJPEG, ImageGIF, ImageWebP},
			SupportsExtendedThinking: true, SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 2},
		},
		{
			Provider: ProviderGoogle, CanonicalName: "gemini-2.5-flash-lite",
			Aliases: []string{"flash-lite", "flashlite"}, ContextTokens: 1_048_576,
			Category: CategoryFast, SupportsImages: true, MaxImageBytes: 20 * 1024 * 1024,
			SupportedImageFormats: []ImageFormat{ImagePNG, ImageJPEG, ImageGIF, ImageWebP},
			SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 2},
		},
		{
			Provider: ProviderOpenAI, CanonicalName: "gpt-4o",
			Aliases: []string{"4o", "gpt4o"}, ContextTokens: 128_000,
			Category: CategoryBalanced, SupportsImages: true, MaxImageBytes: 20 * 1024 * 1024,
			SupportedImageFormats: []ImageFormat{ImagePNG, ImageJPEG, ImageGIF, ImageWebP},
			SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 2},
		},
		{
			Provider: ProviderOpenAI, CanonicalName: "gpt-4o-mini",
			Aliases: []string{"4o-mini", "mini4o"}, ContextTokens: 128_000,
			Category: CategoryFast, SupportsImages: true, MaxImageBytes: 20 * 1024 * 1024,
			SupportedImageFormats: []ImageFormat{ImagePNG, ImageJPEG, ImageGIF, ImageWebP},
			SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 2},
		},
		{
			Provider: ProviderOpenAI, CanonicalName: "o3-mini",
			Aliases: []string{"mini", "o3mini"}, ContextTokens: 200_000,
			Category: CategoryReasoning, SupportsImages: false,
			SupportsSystemPrompt: true, SupportsTemperature: false,
			TemperaturePolicy: TemperaturePolicy{Kind: TempFixed, Fixed: 1.0},
		},
		{
			Provider: ProviderOpenAI, CanonicalName: "o3",
			Aliases: []string{"o3-full"}, ContextTokens: 200_000,
			Category: CategoryExtendedReasoning, SupportsImages: false,
			SupportsSystemPrompt: true, SupportsTemperature: false,
			TemperaturePolicy: TemperaturePolicy{Kind: TempFixed, Fixed: 1.0},
		},
		{
			Provider: ProviderOpenRouter, CanonicalName: "anthropic/claude-3.7-sonnet",
			Aliases: []string{"claude", "sonnet"}, ContextTokens: 200_000,
			Category: CategoryReasoning, SupportsImages: true, MaxImageBytes: 5 * 1024 * 1024,
			SupportedImageFormats: []ImageFormat{ImagePNG, ImageJPEG, ImageGIF, ImageWebP},
			SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 1},
		},
		{
			Provider: ProviderOpenRouter, CanonicalName: "meta-llama/llama-3.3-70b-instruct",
			Aliases: []string{"llama", "llama3"}, ContextTokens: 131_072,
			Category: CategoryBalanced, SupportsImages: false,
			SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 2},
		},
		{
			Provider: ProviderOpenRouter, CanonicalName: "qwen/qwen-2.5-7b-instruct",
			Aliases: []string{"qwen"}, ContextTokens: 32_768,
			Category: CategoryFast, SupportsImages: false,
			SupportsSystemPrompt: true, SupportsTemperature: true,
			TemperaturePolicy: TemperaturePolicy{Kind: TempRange, Lo: 0, Hi: 2},
		},
	}
}
