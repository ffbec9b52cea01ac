package server

import "testing"

func TestGetMethodDefinitions(t *testing.T) {
	s := newServer()
	handled := s.methods()

	seen := make(map[string]bool)
	for _, m := range GetMethodDefinitions() {
		t.Run(m.Name, func(t *testing.T) {
			if seen[m.Name] {
				t.Errorf("duplicate method %s", m.Name)
			}
			seen[m.Name] = true

			if _, ok := handled[m.Name]; !ok {
				t.Errorf("method %s has no handler", m.Name)
			}
			if m.Description == "" {
				t.Error("description is empty")
			}
			if m.ParamSchema["type"] != "object" {
				t.Errorf("schema type: got %v", m.ParamSchema["type"])
			}
			props, ok := m.ParamSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("schema has no properties")
			}
			if req, ok := m.ParamSchema["required"].([]string); ok {
				for _, r := range req {
					if _, ok := props[r]; !ok {
						t.Errorf("required param %s not in properties", r)
					}
				}
			}
		})
	}

	for name := range handled {
		if !seen[name] {
			t.Errorf("handler %s is not described", name)
		}
	}
}
