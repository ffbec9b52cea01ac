package server

// Method describes one JSON-RPC method for discovery. The list is returned in
// the initialize result.
type Method struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	ParamSchema map[string]interface{} `json:"paramSchema"`
}

func object(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

var frameProps = map[string]interface{}{
	"width":  prop("integer", "Frame width in pixels. Defaults to the configured frame size"),
	"height": prop("integer", "Frame height in pixels. Defaults to the configured frame size"),
}

// GetMethodDefinitions returns every method the server answers besides
// initialize and ping.
func GetMethodDefinitions() []Method {
	sampleProps := map[string]interface{}{
		"x": prop("number", "Frame X coordinate"),
		"y": prop("number", "Frame Y coordinate"),
	}
	for k, v := range frameProps {
		sampleProps[k] = v
	}

	return []Method{
		{
			Name:        "viewer/open",
			Description: "Start decoding an image file. The viewer shows a loading placeholder until a viewer/loaded or viewer/failed notification arrives.",
			ParamSchema: object(map[string]interface{}{
				"path": prop("string", "Path to a PNG, JPEG, GIF, BMP, TIFF or WebP file"),
			}, "path"),
		},
		{
			Name:        "viewer/state",
			Description: "Return the title, loading flag, viewport state and image metadata.",
			ParamSchema: object(map[string]interface{}{}),
		},
		{
			Name:        "viewer/input",
			Description: "Deliver raw keyboard or pointer input. Ctrl+0, Ctrl+= and Ctrl+- zoom; drag pans; scroll sets the scale; middle click cycles zoom.",
			ParamSchema: object(map[string]interface{}{
				"kind": map[string]interface{}{
					"type": "string",
					"enum": []string{"key", "drag", "scroll", "middle_click"},
				},
				"key":    prop("string", "Character produced by a key press"),
				"ctrl":   prop("boolean", "Whether Ctrl was held"),
				"offset": prop("object", "Accumulated drag offset {x, y}"),
				"scale":  prop("number", "Absolute scale reported by a scroll or pinch"),
			}, "kind"),
		},
		{
			Name:        "viewer/event",
			Description: "Apply a viewport event directly: scale, move, zoom_in, zoom_out, zoom_original, zoom_change, reset, info, rotate_cw or rotate_ccw.",
			ParamSchema: object(map[string]interface{}{
				"event": prop("string", "Event name"),
				"value": prop("number", "New scale for the scale event"),
				"x":     prop("number", "Pan X for the move event"),
				"y":     prop("number", "Pan Y for the move event"),
			}, "event"),
		},
		{
			Name:        "viewer/render",
			Description: "Render the current view, including the metadata panel and zoom label, as base64 PNG.",
			ParamSchema: object(frameProps),
		},
		{
			Name:        "viewer/sample",
			Description: "Return the colour of the image pixel under a frame coordinate.",
			ParamSchema: object(sampleProps, "x", "y"),
		},
		{
			Name:        "viewer/export",
			Description: "Return the part of the image visible in a frame, unscaled, as base64 PNG.",
			ParamSchema: object(frameProps),
		},
		{
			Name:        "ops/list",
			Description: "List registered transformation operations and the configured decode pipeline.",
			ParamSchema: object(map[string]interface{}{}),
		},
	}
}
