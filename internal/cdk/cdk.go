// internal/cdk/cdk.go

// Package cdk detects whether a template document was synthesized by
// the AWS CDK. The parameter defaulting pass only applies to such
// templates, so the predicate errs on the side of matching anything a
// CDK synth actually emits.
package cdk

const (
	cdkPathMetadataKey = "aws:cdk:path"

	// CDK synth always adds one of these to the template it writes.
	cdkMetadataResource = "CDKMetadata"
	bootstrapParameter  = "BootstrapVersion"
)

// IsCDKProject reports whether the template carries CDK synthesis
// markers: construct-path metadata on any resource, the CDKMetadata
// resource, or the bootstrap version parameter.
func IsCDKProject(template map[string]interface{}) bool {
	resources, _ := template["Resources"].(map[string]interface{})

	if _, ok := resources[cdkMetadataResource]; ok {
		return true
	}

	parameters, _ := template["Parameters"].(map[string]interface{})
	if _, ok := parameters[bootstrapParameter]; ok {
		return true
	}

	for _, raw := range resources {
		resource, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		metadata, ok := resource["Metadata"].(map[string]interface{})
		if !ok {
			continue
		}
		if _, ok := metadata[cdkPathMetadataKey]; ok {
			return true
		}
	}

	return false
}
