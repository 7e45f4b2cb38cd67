package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-version"
)

// DownloadManifest fetches the newest published revision of the named
// manifest from a registry and writes it to the given path. The registry
// serves an index.json listing revisions per manifest, and the manifest
// bodies under <registry>/<name>/<revision>/manifest.yaml. Registries only
// publish YAML, so the destination path must carry a YAML extension.
func DownloadManifest(registryAddress string, manifestName string, manifestPath string) error {
	if extension := filepath.Ext(manifestPath); extension != ".yaml" && extension != ".yml" {
		return fmt.Errorf("registry manifests are YAML; cannot write one to %q", manifestPath)
	}

	indexResponse, err := queryGet(fmt.Sprintf("%s/index.json", registryAddress))
	if err != nil {
		return fmt.Errorf("could not query registry index: %w", err)
	}

	index, err := parse[registryIndex](indexResponse)
	if err != nil {
		return fmt.Errorf("could not parse registry index: %w", err)
	}

	revisions, found := index.Manifests[manifestName]
	if !found || len(revisions) == 0 {
		return fmt.Errorf("registry has no revisions of manifest %q", manifestName)
	}

	orderedRevisions := make([]*version.Version, len(revisions))
	for i, revisionString := range revisions {
		revision, err := version.NewVersion(revisionString)
		if err != nil {
			return fmt.Errorf("error parsing revision %q: %w", revisionString, err)
		}

		orderedRevisions[i] = revision
	}

	sort.Sort(version.Collection(orderedRevisions))
	newest := orderedRevisions[len(orderedRevisions)-1].Original()

	manifestBytes, err := queryGet(fmt.Sprintf("%s/%s/%s/manifest.yaml", registryAddress, manifestName, newest))
	if err != nil {
		return fmt.Errorf("could not download manifest revision %s: %w", newest, err)
	}

	return os.WriteFile(manifestPath, manifestBytes, 0644)
}

func parse[T interface{}](source []byte) (T, error) {
	var parsedBody T
	err := json.Unmarshal(source, &parsedBody)
	return parsedBody, err
}

func queryGet(url string) ([]byte, error) {
	response, err := http.Get(url)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s for %s", response.Status, url)
	}

	return io.ReadAll(response.Body)
}

type registryIndex struct {
	Manifests map[string][]string `json:"manifests"`
}
