// pkg/manifest/schema.go

// Package manifest emits a machine-readable summary of a normalized
// template, correlating each buildable resource to its stable id and
// asset location for downstream build tooling.
package manifest

// BuildManifest is the document written after a normalization run.
type BuildManifest struct {
	Version     string          `json:"version"`
	RunID       string          `json:"run_id"`
	GeneratedAt string          `json:"generated_at"`
	Resources   []ResourceEntry `json:"resources"`
}

// ResourceEntry describes one resource that carries asset metadata.
type ResourceEntry struct {
	ResourceID      string                 `json:"resource_id"`
	LogicalID       string                 `json:"logical_id"`
	Type            string                 `json:"type,omitempty"`
	AssetPath       string                 `json:"asset_path,omitempty"`
	ImageName       string                 `json:"image_name,omitempty"`
	Dockerfile      string                 `json:"dockerfile,omitempty"`
	DockerContext   string                 `json:"docker_context,omitempty"`
	DockerBuildArgs map[string]interface{} `json:"docker_build_args,omitempty"`
	SkipBuild       bool                   `json:"skip_build,omitempty"`
}
