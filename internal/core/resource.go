package core

// ResourceState is the desired state of a resource.
type ResourceState string

const (
	StatePresent ResourceState = "present"
	StateAbsent  ResourceState = "absent"
)

func (s ResourceState) String() string {
	return string(s)
}

// Resource is the interface representing a manageable unit of system
// state. Check reports whether corrective action is needed; Apply
// performs the minimal action to reach the desired state and must be
// idempotent.
type Resource interface {
	Validate() error
	Check(ctx *SystemContext) (bool, error)
	Apply(ctx *SystemContext) (Result, error)
	GetName() string
	GetType() string
}

// Differ is implemented by resources that can preview their pending
// change as a line diff. Used by plan and dry-run output.
type Differ interface {
	Diff(ctx *SystemContext) (string, error)
}

// BaseResource holds the fields common to all resources.
type BaseResource struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func (b *BaseResource) GetName() string {
	return b.Name
}

func (b *BaseResource) GetType() string {
	return b.Type
}
