package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Param is an ordered key/value pair. Lists of params keep the manifest
// order, which maps to the declared apply order.
type Param struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// PackageGroup is a labelled, ordered set of package names. Member
// names must be unique within a group.
type PackageGroup struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
	When    string   `yaml:"when,omitempty"`
}

type PackagesSection struct {
	Install []PackageGroup `yaml:"install"`
	Remove  []PackageGroup `yaml:"remove"`
}

// Repository declares a third-party apt repository with its signing key.
type Repository struct {
	Name      string   `yaml:"name"`
	KeyURL    string   `yaml:"key_url"`
	Keyring   string   `yaml:"keyring"`
	ListFile  string   `yaml:"list_file"`
	Entry     string   `yaml:"entry"`
	Conflicts []string `yaml:"conflicts"`
	Packages  []string `yaml:"packages"`
	When      string   `yaml:"when,omitempty"`
}

type SysctlSection struct {
	File   string  `yaml:"file"`
	Params []Param `yaml:"params"`
}

type JournaldSection struct {
	File       string  `yaml:"file,omitempty"`
	Properties []Param `yaml:"properties"`
}

type EnvSection struct {
	File string  `yaml:"file"`
	Vars []Param `yaml:"vars"`
}

// ServiceSpec accepts either a bare service name or a mapping with
// explicit enabled/running flags; both default to true.
type ServiceSpec struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
	Running *bool  `yaml:"running"`
}

func (s *ServiceSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Name = node.Value
		return nil
	}
	type plain ServiceSpec
	return node.Decode((*plain)(s))
}

type FirefoxPref struct {
	Key   string      `yaml:"key"`
	Value interface{} `yaml:"value"`
}

type FirefoxSection struct {
	Autoconfig string        `yaml:"autoconfig"`
	Config     string        `yaml:"config"`
	Prefs      []FirefoxPref `yaml:"prefs"`
}

type FlatpakSection struct {
	Update bool `yaml:"update"`
}

// Manifest is the full declarative descriptor set of one machine.
type Manifest struct {
	Vars         map[string]string `yaml:"vars"`
	Packages     PackagesSection   `yaml:"packages"`
	Repositories []Repository      `yaml:"repositories"`
	Sysctl       SysctlSection     `yaml:"sysctl"`
	Journald     JournaldSection   `yaml:"journald"`
	Environment  EnvSection        `yaml:"environment"`
	Services     []ServiceSpec     `yaml:"services"`
	Firefox      FirefoxSection    `yaml:"firefox"`
	Flatpak      FlatpakSection    `yaml:"flatpak"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate enforces the manifest invariants: unique members per group,
// complete repository declarations, named services.
func (m *Manifest) Validate() error {
	for _, group := range append(append([]PackageGroup{}, m.Packages.Install...), m.Packages.Remove...) {
		if group.Name == "" {
			return fmt.Errorf("package group without a name")
		}
		seen := make(map[string]bool, len(group.Members))
		for _, member := range group.Members {
			if member == "" {
				return fmt.Errorf("group %s: empty package name", group.Name)
			}
			if seen[member] {
				return fmt.Errorf("group %s: duplicate package %s", group.Name, member)
			}
			seen[member] = true
		}
	}

	for _, repo := range m.Repositories {
		if repo.Name == "" || repo.KeyURL == "" || repo.Keyring == "" || repo.ListFile == "" || repo.Entry == "" {
			return fmt.Errorf("repository %q: name, key_url, keyring, list_file and entry are required", repo.Name)
		}
	}

	for _, svc := range m.Services {
		if svc.Name == "" {
			return fmt.Errorf("service without a name")
		}
	}

	if len(m.Sysctl.Params) > 0 && m.Sysctl.File == "" {
		return fmt.Errorf("sysctl: file is required")
	}
	if len(m.Environment.Vars) > 0 && m.Environment.File == "" {
		return fmt.Errorf("environment: file is required")
	}
	if len(m.Firefox.Prefs) > 0 && (m.Firefox.Autoconfig == "" || m.Firefox.Config == "") {
		return fmt.Errorf("firefox: autoconfig and config paths are required")
	}
	return nil
}
