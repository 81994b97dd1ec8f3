// internal/template/loader.go
package template

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	stderrors "template-normalizer/internal/common/errors"
)

var errNoFetcher = errors.New("no fetcher configured for s3:// input")

// Fetcher retrieves the raw bytes behind a remote template URI.
// The aws package's S3Client satisfies it.
type Fetcher interface {
	FetchObject(ctx context.Context, uri string) ([]byte, error)
}

// Load reads a template from a local path or, when fetcher is non-nil
// and the path is an s3:// URI, from object storage. It returns the
// decoded document together with the detected surface format so the
// caller can save it back the same way.
func Load(ctx context.Context, path string, format Format, fetcher Fetcher) (map[string]interface{}, Format, error) {
	var data []byte
	var err error

	if strings.HasPrefix(path, "s3://") {
		if fetcher == nil {
			return nil, "", stderrors.NewTemplateFetchFailedError(path, errNoFetcher)
		}
		data, err = fetcher.FetchObject(ctx, path)
		if err != nil {
			return nil, "", stderrors.NewTemplateFetchFailedError(path, err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, "", stderrors.NewTemplateReadFailedError(path, err)
		}
	}

	if format == "" {
		format = DetectFormatFromName(path)
		if format == FormatYAML {
			format = DetectFormat(data)
		}
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, "", stderrors.NewTemplateParseFailedError(path, err)
	}

	return doc, format, nil
}

// Parse decodes template bytes in the given format.
func Parse(data []byte, format Format) (map[string]interface{}, error) {
	doc := map[string]interface{}{}
	if format == FormatJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Marshal encodes a document in the given format.
func Marshal(doc map[string]interface{}, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// Save writes the document to a local path in the given format.
func Save(path string, doc map[string]interface{}, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return stderrors.NewTemplateWriteFailedError(path, err)
	}
	if format == FormatJSON {
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return stderrors.NewTemplateWriteFailedError(path, err)
	}
	return nil
}
