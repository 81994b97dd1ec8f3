// internal/normalize/metadata.go
package normalize

// Vendor metadata keys consumed from synthesized templates, and the
// marker keys written back. The key strings are fixed by the upstream
// framework and the build tooling that reads them; never rename.
const (
	ResourcesKey  = "Resources"
	PropertiesKey = "Properties"
	MetadataKey   = "Metadata"
	ParametersKey = "Parameters"

	CDKPathKey         = "aws:cdk:path"
	AssetPathKey       = "aws:asset:path"
	AssetPropertyKey   = "aws:asset:property"
	DockerfilePathKey  = "aws:asset:dockerfile-path"
	DockerBuildArgsKey = "aws:asset:docker-build-args"
	AssetBundledKey    = "aws:asset:is-bundled"

	CustomResourceIDKey = "SamResourceId"
	NormalizedKey       = "SamNormalized"
	DockerfileKey       = "Dockerfile"
	DockerContextKey    = "DockerContext"
	BuildArgsKey        = "DockerBuildArgs"
	SkipBuildKey        = "SkipBuild"

	// ImageAssetProperty is the locator value that marks a container
	// image asset rather than a file asset.
	ImageAssetProperty = "Code.ImageUri"

	// AssetParameterPrefix names the synthesized asset parameters the
	// defaulting pass may patch.
	AssetParameterPrefix = "AssetParameters"

	// NestedStackSuffix decorates construct-path segments of embedded
	// sub-templates.
	NestedStackSuffix = ".NestedStack"

	nestedStackType = "AWS::CloudFormation::Stack"
)

// assetMetadata is the typed view of one resource's vendor metadata
// bag. It is read once per resource; the passes operate on it instead
// of repeating raw key lookups.
type assetMetadata struct {
	AssetPath      string
	AssetProperty  string
	DockerfilePath string
	BuildArgs      map[string]interface{}
	IsBundled      bool
	IsNormalized   bool
}

// readAssetMetadata maps the dynamic metadata mapping into the typed
// view. Wrong-typed values read as absent.
func readAssetMetadata(metadata map[string]interface{}) assetMetadata {
	am := assetMetadata{
		IsBundled:    isTruthy(metadata[AssetBundledKey]),
		IsNormalized: isTruthy(metadata[NormalizedKey]),
	}
	am.AssetPath, _ = metadata[AssetPathKey].(string)
	am.AssetProperty, _ = metadata[AssetPropertyKey].(string)
	am.DockerfilePath, _ = metadata[DockerfilePathKey].(string)
	if args, ok := metadata[DockerBuildArgsKey].(map[string]interface{}); ok {
		am.BuildArgs = args
	}
	return am
}

// isTruthy mirrors loose boolean coercion over decoded JSON/YAML
// scalars, so "true", 1 and true all count as set.
func isTruthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case map[string]interface{}:
		return len(val) > 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}
