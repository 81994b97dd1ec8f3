// internal/normalize/resource_id.go
package normalize

import (
	"strings"

	"template-normalizer/internal/common/metrics"
)

// GetResourceID returns the stable identifier for a resource: the
// customer-defined id when one is set, else the second-to-last segment
// of the construct path recorded by the synthesizing framework, else
// the logical id. Never mutates its input.
//
// Construct-path format for functions: {stack_id}/{function_id}/Resource.
func (n *Normalizer) GetResourceID(resourceProperties map[string]interface{}, logicalID string) string {
	metadata, _ := resourceProperties[MetadataKey].(map[string]interface{})

	if customID, ok := metadata[CustomResourceIDKey].(string); ok && customID != "" {
		return customID
	}

	cdkPath, ok := metadata[CDKPathKey].(string)
	if !ok || cdkPath == "" {
		return logicalID
	}

	partitions := strings.Split(cdkPath, "/")
	if len(partitions) < 2 {
		n.logger.Warn("Cannot detect resource id from construct path metadata, using default logical id", map[string]interface{}{
			"cdk_path":   cdkPath,
			"logical_id": logicalID,
		})
		metrics.MetadataWarnings.WithLabelValues("malformed_construct_path").Inc()
		return logicalID
	}

	resourceID := partitions[len(partitions)-2]

	// Embedded sub-templates carry a suffixed construct segment.
	if resourceType, _ := resourceProperties["Type"].(string); resourceType == nestedStackType {
		resourceID = strings.TrimSuffix(resourceID, NestedStackSuffix)
	}

	return resourceID
}
