// Package openapi renders the tooltip configuration surface as an OpenAPI
// components document, for form builders and editor tooling.
package openapi

import (
	"fmt"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/pkg/floating"
)

// Generate builds the document from the attribute descriptors. Every
// property carries its element attribute name under x-attribute.
func Generate(opts ...GeneratorOption) (map[string]any, error) {
	cfg := defaultGeneratorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	properties := map[string]any{}
	for _, d := range tooltip.AttributeDescriptors() {
		properties[d.Key] = propertySchema(d)
	}

	info := map[string]any{
		"title":   cfg.info.Title,
		"version": cfg.info.Version,
	}
	if cfg.info.Description != "" {
		info["description"] = cfg.info.Description
	}

	document := map[string]any{
		"openapi": cfg.openAPIVersion,
		"info":    info,
		"paths":   map[string]any{},
		"components": map[string]any{
			"schemas": map[string]any{
				cfg.componentName: map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           properties,
				},
			},
		},
	}
	if err := validateDocument(document); err != nil {
		return nil, err
	}
	return document, nil
}

func propertySchema(d tooltip.AttributeDescriptor) map[string]any {
	schema := map[string]any{
		"type":        d.Type,
		"default":     d.Default,
		"x-attribute": d.Attribute,
	}
	if d.Description != "" {
		schema["description"] = d.Description
	}
	switch d.Key {
	case "placement":
		enum := make([]string, len(floating.Placements))
		for i, p := range floating.Placements {
			enum[i] = string(p)
		}
		schema["enum"] = enum
	case "show_delay", "hide_delay", "transition_duration":
		schema["x-unit"] = "ms"
	case "offset":
		schema["x-unit"] = "px"
	}
	return schema
}

func validateDocument(document map[string]any) error {
	if v, _ := document["openapi"].(string); v == "" {
		return fmt.Errorf("openapi: version is required")
	}
	info, _ := document["info"].(map[string]any)
	if title, _ := info["title"].(string); title == "" {
		return fmt.Errorf("openapi: info.title is required")
	}
	if version, _ := info["version"].(string); version == "" {
		return fmt.Errorf("openapi: info.version is required")
	}
	return nil
}
