package prompts

// CommunityStyle is the style block each community template carries. The
// fields are exposed to the instruction string as substitution variables so a
// prompt can reference its own style metadata.
type CommunityStyle struct {
	Core              string   `yaml:"core"`
	Tone              string   `yaml:"tone"`
	Characteristics   []string `yaml:"characteristics"`
	ProfessionalTerms bool     `yaml:"professional_terms"`
}

// Template is one community's prompt configuration, loaded from a YAML file.
// Name, Description and Version are display metadata only; generation uses
// RoleDefinition, Guidelines, CommunityStyle and SystemPrompt.
type Template struct {
	Name           string         `yaml:"name"`
	Description    string         `yaml:"description"`
	Version        string         `yaml:"version"`
	RoleDefinition string         `yaml:"role_definition"`
	Guidelines     []string       `yaml:"guidelines"`
	CommunityStyle CommunityStyle `yaml:"community_style"`
	InputVariables []string       `yaml:"input_variables"`
	SystemPrompt   string         `yaml:"system_prompt"`

	// Key is the registry key (lower-cased filename stem), set by the loader.
	Key string `yaml:"-"`
}
