package models

// MenuEntry is one node of the authorized menu tree.
type MenuEntry struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Icon     string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Path     string      `json:"path" yaml:"path"`
	Entry    string      `json:"entry,omitempty" yaml:"entry,omitempty"`
	Children []MenuEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

type EntriesData struct {
	Type    string      `json:"@type,omitempty"`
	Entries []MenuEntry `json:"entries"`
}

// SubApplicationDescriptor describes where one sub-application is fetched
// from and which paths it owns.
type SubApplicationDescriptor struct {
	Name       string `json:"name" yaml:"name"`
	Entry      string `json:"entry" yaml:"entry"`
	Container  string `json:"container" yaml:"container"`
	ActiveRule string `json:"activeRule" yaml:"activeRule"`
}
