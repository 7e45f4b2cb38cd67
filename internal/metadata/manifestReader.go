// The package used for describing and loading property binding manifests.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ReadManifest loads the manifest under the given path, choosing the decoder
// by file extension. Supported extensions: .yaml, .yml, .toml, .json.
func ReadManifest(manifestPath string) (Manifest, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return Manifest{}, fmt.Errorf("could not read manifest: %w", err)
	}

	var manifest Manifest
	switch extension := filepath.Ext(manifestPath); extension {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &manifest)
	case ".toml":
		err = toml.Unmarshal(raw, &manifest)
	case ".json":
		err = json.Unmarshal(raw, &manifest)
	default:
		return Manifest{}, fmt.Errorf("unsupported manifest extension: %q", extension)
	}

	if err != nil {
		return Manifest{}, fmt.Errorf("could not parse manifest %s: %w", manifestPath, err)
	}

	if len(manifest.Classes) == 0 {
		return Manifest{}, fmt.Errorf("manifest %s declares no classes", manifestPath)
	}

	return manifest, nil
}
