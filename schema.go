package tooltip

import (
	"fmt"
	"sort"
	"strings"
)

// AttributeDescriptor documents one configurable attribute.
type AttributeDescriptor struct {
	Attribute   string `json:"attribute"`
	Key         string `json:"key"`
	Type        string `json:"type"`
	Default     any    `json:"default"`
	Description string `json:"description,omitempty"`
}

// AttributeDescriptors lists the configuration surface sorted by key, with
// the stock defaults.
func AttributeDescriptors() []AttributeDescriptor {
	defaults, err := settingsMap(SettingsFromConfig(DefaultConfig()))
	if err != nil {
		return nil
	}
	byKey := make(map[string]attributeSpec, len(attributeSpecs))
	for _, spec := range attributeSpecs {
		byKey[spec.key] = spec
	}

	descriptors := make([]AttributeDescriptor, 0, len(defaults))
	for _, field := range deriveFieldDescriptors(defaults, "") {
		spec, ok := byKey[field.Path]
		if !ok {
			continue
		}
		descriptors = append(descriptors, AttributeDescriptor{
			Attribute:   spec.name,
			Key:         field.Path,
			Type:        spec.kind.String(),
			Default:     defaults[field.Path],
			Description: spec.description,
		})
	}
	return descriptors
}

type fieldDescriptor struct {
	Path string
	Type string
}

func deriveFieldDescriptors(value any, prefix string) []fieldDescriptor {
	if value == nil {
		return nil
	}

	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var fields []fieldDescriptor
		for _, key := range keys {
			fields = append(fields, deriveFieldDescriptors(typed[key], joinPath(prefix, key))...)
		}
		return fields
	default:
		if prefix == "" {
			return nil
		}
		return []fieldDescriptor{{
			Path: prefix,
			Type: fmt.Sprintf("%T", typed),
		}}
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
