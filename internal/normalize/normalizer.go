// internal/normalize/normalizer.go

// Package normalize rewrites synthesized CloudFormation templates so
// build tooling can find source assets directly in resource properties
// instead of chasing vendor metadata annotations.
package normalize

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"template-normalizer/internal/cdk"
	"template-normalizer/internal/common/logger"
	"template-normalizer/internal/common/metrics"
)

// Normalizer mutates template documents in place. The zero value is
// not usable; construct with New.
type Normalizer struct {
	logger logger.Logger
}

func New(log logger.Logger) *Normalizer {
	return &Normalizer{logger: log}
}

// Normalize runs the asset rewrite and skip-build passes over every
// resource, and, when normalizeParameters is set and the template was
// synthesized by CDK, the parameter defaulting pass. The document is
// mutated in place; diagnostics go to the logger and nothing is ever
// fatal. Safe to call twice: rewritten resources carry a marker in
// Metadata and are not processed again.
func (n *Normalizer) Normalize(template map[string]interface{}, normalizeParameters bool) {
	resources, _ := template[ResourcesKey].(map[string]interface{})

	for logicalID, raw := range resources {
		resource, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		n.normalizeResource(logicalID, resource)
	}

	if normalizeParameters && cdk.IsCDKProject(template) {
		n.defaultAssetParameters(template, resources)
	}
}

func (n *Normalizer) normalizeResource(logicalID string, resource map[string]interface{}) {
	metadata, hasMetadata := resource[MetadataKey].(map[string]interface{})
	if !hasMetadata {
		// No annotations to act on; both passes read Metadata only.
		return
	}
	am := readAssetMetadata(metadata)

	if !am.IsNormalized {
		assetPath := am.AssetPath
		if am.AssetProperty == ImageAssetProperty {
			updateResourceMetadata(metadata, n.imageAssetMetadata(am))
			// Image resources are addressed by image name; the build
			// pipeline names the image after the logical id.
			assetPath = strings.ToLower(logicalID)
		}

		n.replaceProperty(am.AssetProperty, assetPath, resource, logicalID)
		if am.AssetProperty != "" && assetPath != "" {
			metadata[NormalizedKey] = true
			metrics.ResourcesNormalized.Inc()
		}
	}

	if am.IsBundled {
		updateResourceMetadata(metadata, map[string]interface{}{
			SkipBuildKey: true,
		})
		metrics.SkipBuildMarked.Inc()
	}
}

// replaceProperty relocates the asset path into Properties at the
// dot-separated locator. Intermediate segments are overwritten with
// fresh mappings, not merged: sibling keys under the rewritten path do
// not survive. This matches what the downstream build tooling expects
// and must not be changed to a merge.
func (n *Normalizer) replaceProperty(locator, value string, resource map[string]interface{}, logicalID string) {
	if locator != "" && value != "" {
		properties, ok := resource[PropertiesKey].(map[string]interface{})
		if !ok {
			properties = map[string]interface{}{}
			resource[PropertiesKey] = properties
		}

		segments := strings.Split(locator, ".")
		target := properties
		for _, key := range segments[:len(segments)-1] {
			next := map[string]interface{}{}
			target[key] = next
			target = next
		}
		target[segments[len(segments)-1]] = value
		return
	}

	if locator != "" || value != "" {
		n.logger.Warn("Ignoring metadata for resource: contains only an asset path or an asset property but not both", map[string]interface{}{
			"logical_id": logicalID,
		})
		metrics.MetadataWarnings.WithLabelValues("partial_asset_metadata").Inc()
	}
}

// imageAssetMetadata derives the Dockerfile name, build context and
// build args for an image asset. The dockerfile path may be recorded
// relative to the project root or to the asset path; when it already
// starts with the asset path the context is not double-prefixed.
func (n *Normalizer) imageAssetMetadata(am assetMetadata) map[string]interface{} {
	dockerfile := path.Base(am.DockerfilePath)
	dockerfile = strings.TrimSuffix(dockerfile, path.Ext(dockerfile))
	if am.DockerfilePath == "" {
		dockerfile = ""
	}

	assetPath := path.Clean(am.AssetPath)
	dir := path.Dir(am.DockerfilePath)

	var context string
	switch {
	case dir == "." || dir == "/":
		context = assetPath
	case assetPath == "." || assetPath == "":
		context = dir
	case dir == assetPath || strings.HasPrefix(dir, assetPath+"/"):
		context = dir
	default:
		context = path.Join(assetPath, dir)
	}

	buildArgs := am.BuildArgs
	if buildArgs == nil {
		buildArgs = map[string]interface{}{}
	}

	return map[string]interface{}{
		DockerfileKey:    dockerfile,
		DockerContextKey: context,
		BuildArgsKey:     buildArgs,
	}
}

// defaultAssetParameters gives an inert blank default to synthesized
// asset parameters that are string-typed, defaultless and never
// referenced by a resource. Reference detection is a textual scan of
// the serialized Resources mapping for the literal Ref substring; it
// is approximate on purpose and must not be replaced with a semantic
// reference walk.
func (n *Normalizer) defaultAssetParameters(template, resources map[string]interface{}) {
	serialized, err := json.Marshal(resources)
	if err != nil {
		n.logger.Warn("Skipping parameter defaulting: resources could not be serialized", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	resourcesAsString := string(serialized)

	parameters, _ := template[ParametersKey].(map[string]interface{})
	for name, raw := range parameters {
		parameter, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if !strings.HasPrefix(name, AssetParameterPrefix) {
			continue
		}
		if _, hasDefault := parameter["Default"]; hasDefault {
			continue
		}
		if paramType, _ := parameter["Type"].(string); paramType != "String" {
			continue
		}
		if strings.Contains(resourcesAsString, fmt.Sprintf(`"Ref":%q`, name)) {
			continue
		}
		parameter["Default"] = " "
		metrics.ParametersDefaulted.Inc()
		n.logger.Debug("Defaulted unreferenced asset parameter", map[string]interface{}{
			"parameter": name,
		})
	}
}

// updateResourceMetadata merges the derived values into the resource
// metadata, overwriting existing keys of the same name.
func updateResourceMetadata(metadata, values map[string]interface{}) {
	for key, val := range values {
		metadata[key] = val
	}
}
