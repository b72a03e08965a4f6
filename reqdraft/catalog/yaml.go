package catalog

import (
	"fmt"
	"io"
	"os"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"gopkg.in/yaml.v3"
)

// endpointsFile is the on-disk shape of an endpoint override file:
//
//	endpoints:
//	  product:
//	    - /catalogs/products/
//	    - /products/
//	  item_description:
//	    - "/catalogs/item-descriptions/?product={product}"
type endpointsFile struct {
	Endpoints map[string][]string `yaml:"endpoints"`
}

// LoadEndpoints reads an endpoint override file and overlays it onto the
// defaults. Domains absent from the file keep their default candidates;
// unknown domain keys are rejected so typos fail loudly at startup.
func LoadEndpoints(r io.Reader) (Endpoints, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}

	var file endpointsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse endpoints file: %w", err)
	}

	overrides := make(Endpoints, len(file.Endpoints))

	for key, candidates := range file.Endpoints {
		domain := Domain(key)
		if !domain.Valid() {
			return nil, fmt.Errorf("%w: %q", constant.ErrUnknownDomain, key)
		}

		overrides[domain] = candidates
	}

	return DefaultEndpoints().merge(overrides), nil
}

// LoadEndpointsFile is LoadEndpoints over a file path.
func LoadEndpointsFile(path string) (Endpoints, error) {
	f, err := os.Open(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("open endpoints file: %w", err)
	}
	defer f.Close()

	return LoadEndpoints(f)
}
