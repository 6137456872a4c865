package config

// File is the structure of the pak.yaml configuration file.
type File struct {
	Depots  []string    `yaml:"depots"`
	Runtime *RuntimeDTO `yaml:"runtime"`
	Jobs    int         `yaml:"jobs"`
	Git     GitDTO      `yaml:"git"`
}

// RuntimeDTO describes the host runtime in the configuration file.
type RuntimeDTO struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// GitDTO holds git transport settings.
type GitDTO struct {
	Retries *uint64 `yaml:"retries"`
}
