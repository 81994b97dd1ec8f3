// internal/normalize/normalizer_test.go
package normalize

import (
	"testing"

	"template-normalizer/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t        *testing.T
	warnings []string
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.warnings = append(tl.warnings, msg)
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func newTestNormalizer(t *testing.T) (*Normalizer, *testLogger) {
	tl := &testLogger{t: t}
	return New(tl), tl
}

func templateWithResource(logicalID string, metadata map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"Resources": map[string]interface{}{
			logicalID: map[string]interface{}{
				"Type":       "AWS::Lambda::Function",
				"Properties": map[string]interface{}{},
				"Metadata":   metadata,
			},
		},
	}
}

func resourceOf(template map[string]interface{}, logicalID string) map[string]interface{} {
	resources := template["Resources"].(map[string]interface{})
	return resources[logicalID].(map[string]interface{})
}

// ==========================
// Asset Rewrite Pass Tests
// ==========================

func TestNormalize_FileAssetRewrite(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Function1", map[string]interface{}{
		AssetPathKey:     "assets/fn.zip",
		AssetPropertyKey: "Code.S3Key",
	})

	n.Normalize(template, false)

	resource := resourceOf(template, "Function1")
	properties := resource["Properties"].(map[string]interface{})
	code := properties["Code"].(map[string]interface{})
	assert.Equal(t, "assets/fn.zip", code["S3Key"])

	metadata := resource["Metadata"].(map[string]interface{})
	assert.Equal(t, true, metadata[NormalizedKey])
}

func TestNormalize_TopLevelProperty(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Layer1", map[string]interface{}{
		AssetPathKey:     "layers/shared",
		AssetPropertyKey: "ContentUri",
	})

	n.Normalize(template, false)

	properties := resourceOf(template, "Layer1")["Properties"].(map[string]interface{})
	assert.Equal(t, "layers/shared", properties["ContentUri"])
}

func TestNormalize_CreatesPropertiesWhenAbsent(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := map[string]interface{}{
		"Resources": map[string]interface{}{
			"Fn": map[string]interface{}{
				"Type": "AWS::Lambda::Function",
				"Metadata": map[string]interface{}{
					AssetPathKey:     "src",
					AssetPropertyKey: "Code",
				},
			},
		},
	}

	n.Normalize(template, false)

	properties := resourceOf(template, "Fn")["Properties"].(map[string]interface{})
	assert.Equal(t, "src", properties["Code"])
}

func TestNormalize_OverwritesIntermediateSegments(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetPathKey:     "assets/fn.zip",
		AssetPropertyKey: "Code.S3Key",
	})
	properties := resourceOf(template, "Fn")["Properties"].(map[string]interface{})
	properties["Code"] = map[string]interface{}{
		"S3Bucket": "my-bucket",
		"S3Key":    "old.zip",
	}

	n.Normalize(template, false)

	// Intermediate segments are replaced wholesale; siblings do not
	// survive the rewrite.
	code := properties["Code"].(map[string]interface{})
	assert.Equal(t, "assets/fn.zip", code["S3Key"])
	assert.NotContains(t, code, "S3Bucket")
}

func TestNormalize_Idempotent(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetPathKey:     "assets/fn.zip",
		AssetPropertyKey: "Code.S3Key",
	})

	n.Normalize(template, false)
	firstProperties := resourceOf(template, "Fn")["Properties"].(map[string]interface{})
	first := firstProperties["Code"].(map[string]interface{})["S3Key"]

	n.Normalize(template, false)
	secondProperties := resourceOf(template, "Fn")["Properties"].(map[string]interface{})
	second := secondProperties["Code"].(map[string]interface{})["S3Key"]

	assert.Equal(t, first, second)
}

func TestNormalize_LocatorWithoutPath(t *testing.T) {
	n, tl := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetPropertyKey: "Code.S3Key",
	})

	n.Normalize(template, false)

	resource := resourceOf(template, "Fn")
	properties := resource["Properties"].(map[string]interface{})
	assert.Empty(t, properties)

	metadata := resource["Metadata"].(map[string]interface{})
	assert.NotContains(t, metadata, NormalizedKey)
	assert.Len(t, tl.warnings, 1)
}

func TestNormalize_PathWithoutLocator(t *testing.T) {
	n, tl := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetPathKey: "assets/fn.zip",
	})

	n.Normalize(template, false)

	properties := resourceOf(template, "Fn")["Properties"].(map[string]interface{})
	assert.Empty(t, properties)
	assert.Len(t, tl.warnings, 1)
}

func TestNormalize_NoMetadata(t *testing.T) {
	n, tl := newTestNormalizer(t)
	template := map[string]interface{}{
		"Resources": map[string]interface{}{
			"Fn": map[string]interface{}{
				"Type":       "AWS::Lambda::Function",
				"Properties": map[string]interface{}{"Runtime": "go1.x"},
			},
		},
	}

	n.Normalize(template, false)

	properties := resourceOf(template, "Fn")["Properties"].(map[string]interface{})
	assert.Equal(t, "go1.x", properties["Runtime"])
	assert.Empty(t, tl.warnings)
}

func TestNormalize_NoResources(t *testing.T) {
	n, _ := newTestNormalizer(t)

	assert.NotPanics(t, func() {
		n.Normalize(map[string]interface{}{}, false)
		n.Normalize(map[string]interface{}{"Resources": "not-a-map"}, true)
	})
}

// ==========================
// Image Asset Tests
// ==========================

func TestNormalize_ImageAsset(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("MyFunction", map[string]interface{}{
		AssetPathKey:       "src/",
		AssetPropertyKey:   ImageAssetProperty,
		DockerfilePathKey:  "src/docker/Dockerfile",
		DockerBuildArgsKey: map[string]interface{}{"A": "1"},
	})

	n.Normalize(template, false)

	resource := resourceOf(template, "MyFunction")
	metadata := resource["Metadata"].(map[string]interface{})
	assert.Equal(t, "Dockerfile", metadata[DockerfileKey])
	assert.Equal(t, "src/docker", metadata[DockerContextKey])
	assert.Equal(t, map[string]interface{}{"A": "1"}, metadata[BuildArgsKey])
	assert.Equal(t, true, metadata[NormalizedKey])

	properties := resource["Properties"].(map[string]interface{})
	code := properties["Code"].(map[string]interface{})
	assert.Equal(t, "myfunction", code["ImageUri"])
}

func TestNormalize_ImageAssetRelativeDockerfile(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetPathKey:      "src",
		AssetPropertyKey:  ImageAssetProperty,
		DockerfilePathKey: "docker/Dockerfile",
	})

	n.Normalize(template, false)

	metadata := resourceOf(template, "Fn")["Metadata"].(map[string]interface{})
	assert.Equal(t, "src/docker", metadata[DockerContextKey])
}

func TestNormalize_ImageAssetBareDockerfile(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetPathKey:      "image-src",
		AssetPropertyKey:  ImageAssetProperty,
		DockerfilePathKey: "Dockerfile",
	})

	n.Normalize(template, false)

	metadata := resourceOf(template, "Fn")["Metadata"].(map[string]interface{})
	assert.Equal(t, "Dockerfile", metadata[DockerfileKey])
	assert.Equal(t, "image-src", metadata[DockerContextKey])
	assert.Equal(t, map[string]interface{}{}, metadata[BuildArgsKey])
}

func TestNormalize_ImageAssetDockerfileWithExtension(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetPathKey:      "src",
		AssetPropertyKey:  ImageAssetProperty,
		DockerfilePathKey: "src/Dockerfile.prod",
	})

	n.Normalize(template, false)

	metadata := resourceOf(template, "Fn")["Metadata"].(map[string]interface{})
	assert.Equal(t, "Dockerfile", metadata[DockerfileKey])
	assert.Equal(t, "src", metadata[DockerContextKey])
}

// ==========================
// Skip-Build Propagation Tests
// ==========================

func TestNormalize_SkipBuild(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetBundledKey: true,
	})

	n.Normalize(template, false)

	metadata := resourceOf(template, "Fn")["Metadata"].(map[string]interface{})
	assert.Equal(t, true, metadata[SkipBuildKey])
}

func TestNormalize_SkipBuildFalse(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		AssetBundledKey: false,
	})

	n.Normalize(template, false)

	metadata := resourceOf(template, "Fn")["Metadata"].(map[string]interface{})
	assert.NotContains(t, metadata, SkipBuildKey)
}

func TestNormalize_SkipBuildRunsOnNormalizedResource(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := templateWithResource("Fn", map[string]interface{}{
		NormalizedKey:   true,
		AssetBundledKey: true,
	})

	n.Normalize(template, false)

	metadata := resourceOf(template, "Fn")["Metadata"].(map[string]interface{})
	assert.Equal(t, true, metadata[SkipBuildKey])
}

// ==========================
// Parameter Defaulting Tests
// ==========================

func cdkTemplate(parameters map[string]interface{}, resources map[string]interface{}) map[string]interface{} {
	if resources == nil {
		resources = map[string]interface{}{}
	}
	resources["CDKMetadata"] = map[string]interface{}{
		"Type": "AWS::CDK::Metadata",
	}
	return map[string]interface{}{
		"Resources":  resources,
		"Parameters": parameters,
	}
}

func TestNormalize_DefaultsUnreferencedAssetParameter(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := cdkTemplate(map[string]interface{}{
		"AssetParametersFoo": map[string]interface{}{
			"Type": "String",
		},
	}, nil)

	n.Normalize(template, true)

	parameter := template["Parameters"].(map[string]interface{})["AssetParametersFoo"].(map[string]interface{})
	assert.Equal(t, " ", parameter["Default"])
}

func TestNormalize_ReferencedParameterKeepsNoDefault(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := cdkTemplate(map[string]interface{}{
		"AssetParametersFoo": map[string]interface{}{
			"Type": "String",
		},
	}, map[string]interface{}{
		"Fn": map[string]interface{}{
			"Type": "AWS::Lambda::Function",
			"Properties": map[string]interface{}{
				"Code": map[string]interface{}{
					"S3Key": map[string]interface{}{"Ref": "AssetParametersFoo"},
				},
			},
		},
	})

	n.Normalize(template, true)

	parameter := template["Parameters"].(map[string]interface{})["AssetParametersFoo"].(map[string]interface{})
	assert.NotContains(t, parameter, "Default")
}

func TestNormalize_ParameterSkipRules(t *testing.T) {
	tests := []struct {
		name      string
		parameter map[string]interface{}
		paramName string
	}{
		{
			name:      "existing default untouched",
			paramName: "AssetParametersBar",
			parameter: map[string]interface{}{"Type": "String", "Default": "keep"},
		},
		{
			name:      "non-string type",
			paramName: "AssetParametersBaz",
			parameter: map[string]interface{}{"Type": "Number"},
		},
		{
			name:      "prefix mismatch",
			paramName: "OtherParameter",
			parameter: map[string]interface{}{"Type": "String"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := newTestNormalizer(t)
			template := cdkTemplate(map[string]interface{}{
				tt.paramName: tt.parameter,
			}, nil)

			n.Normalize(template, true)

			parameter := template["Parameters"].(map[string]interface{})[tt.paramName].(map[string]interface{})
			if existing, ok := tt.parameter["Default"]; ok {
				assert.Equal(t, existing, parameter["Default"])
			} else {
				assert.NotContains(t, parameter, "Default")
			}
		})
	}
}

func TestNormalize_ParameterPassSkippedWithoutFlag(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := cdkTemplate(map[string]interface{}{
		"AssetParametersFoo": map[string]interface{}{"Type": "String"},
	}, nil)

	n.Normalize(template, false)

	parameter := template["Parameters"].(map[string]interface{})["AssetParametersFoo"].(map[string]interface{})
	assert.NotContains(t, parameter, "Default")
}

func TestNormalize_ParameterPassSkippedForNonCDKTemplate(t *testing.T) {
	n, _ := newTestNormalizer(t)
	template := map[string]interface{}{
		"Resources": map[string]interface{}{},
		"Parameters": map[string]interface{}{
			"AssetParametersFoo": map[string]interface{}{"Type": "String"},
		},
	}

	n.Normalize(template, true)

	parameter := template["Parameters"].(map[string]interface{})["AssetParametersFoo"].(map[string]interface{})
	assert.NotContains(t, parameter, "Default")
}

// ==========================
// Metadata Coercion Tests
// ==========================

func TestIsTruthy(t *testing.T) {
	assert.True(t, isTruthy(true))
	assert.True(t, isTruthy("yes"))
	assert.True(t, isTruthy(1))
	assert.True(t, isTruthy(1.5))
	assert.False(t, isTruthy(false))
	assert.False(t, isTruthy(""))
	assert.False(t, isTruthy(0))
	assert.False(t, isTruthy(nil))
	assert.False(t, isTruthy(map[string]interface{}{}))
}

func TestReadAssetMetadata_WrongTypes(t *testing.T) {
	am := readAssetMetadata(map[string]interface{}{
		AssetPathKey:       123,
		AssetPropertyKey:   []interface{}{"Code"},
		DockerBuildArgsKey: "not-a-map",
	})

	require.Empty(t, am.AssetPath)
	require.Empty(t, am.AssetProperty)
	require.Nil(t, am.BuildArgs)
}
