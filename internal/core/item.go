package core

// ConfigItem is one raw descriptor handed to the engine: a resource
// type, a desired state and the free-form params the factory consumes.
type ConfigItem struct {
	Type   string
	Name   string
	State  string
	When   string // optional condition expression
	Params map[string]interface{}
}
