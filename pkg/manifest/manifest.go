// pkg/manifest/manifest.go
package manifest

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	stderrors "template-normalizer/internal/common/errors"
	"template-normalizer/internal/normalize"
	"template-normalizer/internal/template"
)

const schemaVersion = "1.0"

// Generate builds a manifest from a normalized template. Only
// resources that carry asset metadata or a skip-build marker appear;
// entries are sorted by logical id so the output is reproducible run
// to run (aside from run_id and timestamp).
func Generate(doc map[string]interface{}, normalizer *normalize.Normalizer) *BuildManifest {
	m := &BuildManifest{
		Version:     schemaVersion,
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Resources:   []ResourceEntry{},
	}

	resources := template.Resources(doc)

	logicalIDs := make([]string, 0, len(resources))
	for id := range resources {
		logicalIDs = append(logicalIDs, id)
	}
	sort.Strings(logicalIDs)

	for _, logicalID := range logicalIDs {
		resource, ok := resources[logicalID].(map[string]interface{})
		if !ok {
			continue
		}
		metadata, ok := resource[normalize.MetadataKey].(map[string]interface{})
		if !ok {
			continue
		}

		assetPath, _ := metadata[normalize.AssetPathKey].(string)
		dockerfile, _ := metadata[normalize.DockerfileKey].(string)
		dockerContext, _ := metadata[normalize.DockerContextKey].(string)
		buildArgs, _ := metadata[normalize.BuildArgsKey].(map[string]interface{})
		skipBuild, _ := metadata[normalize.SkipBuildKey].(bool)

		if assetPath == "" && dockerfile == "" && !skipBuild {
			continue
		}

		// Image resources are built into an image named after the
		// logical id; file assets have no image name.
		imageName := ""
		if dockerfile != "" {
			imageName = strings.ToLower(logicalID)
		}

		resourceType, _ := resource["Type"].(string)
		m.Resources = append(m.Resources, ResourceEntry{
			ResourceID:      normalizer.GetResourceID(resource, logicalID),
			LogicalID:       logicalID,
			Type:            resourceType,
			AssetPath:       assetPath,
			ImageName:       imageName,
			Dockerfile:      dockerfile,
			DockerContext:   dockerContext,
			DockerBuildArgs: buildArgs,
			SkipBuild:       skipBuild,
		})
	}

	return m
}

// Write saves the manifest as indented JSON.
func Write(path string, m *BuildManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return stderrors.NewManifestWriteFailedError(path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return stderrors.NewManifestWriteFailedError(path, err)
	}
	return nil
}

// Load reads a manifest back, mostly for tests and tooling that
// consumes the file.
func Load(path string) (*BuildManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
