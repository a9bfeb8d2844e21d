package formatter

import (
	"fmt"
	"strings"
)

// Preset represents a template preset with name, template string, and description.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry manages template presets.
type PresetRegistry interface {
	// Get returns a preset by name.
	Get(name string) (*Preset, error)

	// List returns all available presets.
	List() []Preset

	// Register adds a new preset.
	Register(preset Preset) error
}

type presetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry creates a new preset registry with the default presets.
func NewPresetRegistry() PresetRegistry {
	registry := &presetRegistry{
		presets: make(map[string]Preset),
	}
	registry.registerDefaults()
	return registry
}

func (pr *presetRegistry) registerDefaults() {
	presets := []Preset{
		{
			Name:        "count-only",
			Template:    "${total-count}",
			Description: "Only the number of matching items",
		},
		{
			Name:        "compact",
			Template:    "[${total-count}] ${first-item}",
			Description: "Match count and the first item on the page",
		},
		{
			Name:        "pager",
			Template:    "page ${page}/${total-pages} (${total-count} items)",
			Description: "Current page position",
		},
		{
			Name:        "detailed",
			Template:    "${total-count} items, ${active-filters} active filters, sorted by ${sort}",
			Description: "Counts with filter and sort summary",
		},
		{
			Name:        "filters",
			Template:    "category=${category} brands=${brands} tags=${tags} price=${price-range}",
			Description: "Active selections",
		},
		{
			Name:        "json",
			Template:    `{"total":${total-count},"page":${page},"pages":${total-pages},"sort":"${sort}"}`,
			Description: "JSON format for programmatic consumption",
		},
	}
	for _, preset := range presets {
		_ = pr.Register(preset)
	}
}

// Get returns a preset by name, or an error if not found.
func (pr *presetRegistry) Get(name string) (*Preset, error) {
	preset, ok := pr.presets[name]
	if !ok {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	return &preset, nil
}

// List returns all available presets in registration order.
func (pr *presetRegistry) List() []Preset {
	result := make([]Preset, 0, len(pr.order))
	for _, name := range pr.order {
		result = append(result, pr.presets[name])
	}
	return result
}

// Register adds a new preset or overwrites an existing one.
func (pr *presetRegistry) Register(preset Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Template == "" {
		return fmt.Errorf("preset template cannot be empty")
	}
	if _, exists := pr.presets[preset.Name]; !exists {
		pr.order = append(pr.order, preset.Name)
	}
	pr.presets[preset.Name] = preset
	return nil
}

// Render resolves name as a preset, or as a literal template when it
// contains a placeholder, and substitutes ctx into it.
func Render(registry PresetRegistry, name string, ctx VariableContext) (string, error) {
	template := name
	if !strings.Contains(name, "${") {
		preset, err := registry.Get(name)
		if err != nil {
			return "", err
		}
		template = preset.Template
	}
	return NewTemplateEngine().Substitute(template, ctx)
}
