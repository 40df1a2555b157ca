package core

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ExecuteTemplate renders content against the system context with the
// sprig function map. missingkey=zero keeps optional variables working
// with sprig's 'default'.
func ExecuteTemplate(content string, data interface{}) (string, error) {
	tmpl, err := template.New("mintup").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(content)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderParams walks a raw param map and renders every string value as
// a template against the system context.
func RenderParams(params map[string]interface{}, ctx *SystemContext) error {
	for k, v := range params {
		switch val := v.(type) {
		case string:
			rendered, err := ExecuteTemplate(val, ctx)
			if err != nil {
				return fmt.Errorf("param %q: %w", k, err)
			}
			params[k] = rendered
		case map[string]interface{}:
			if err := RenderParams(val, ctx); err != nil {
				return err
			}
		case []interface{}:
			for i, item := range val {
				switch sub := item.(type) {
				case string:
					rendered, err := ExecuteTemplate(sub, ctx)
					if err != nil {
						return fmt.Errorf("param %q index %d: %w", k, i, err)
					}
					val[i] = rendered
				case map[string]interface{}:
					if err := RenderParams(sub, ctx); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
