package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// MergePatch lays patch over base field by field: any key present in
// patch overrides the corresponding key in base, nested objects are
// merged recursively, and arrays replace the base array wholesale.
// base is not modified.
func MergePatch(base *Page, patch map[string]any) (*Page, error) {
	raw, err := json.Marshal(base)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal base page")
	}

	var baseMap map[string]any
	if err := json.Unmarshal(raw, &baseMap); err != nil {
		return nil, goerr.Wrap(err, "failed to decode base page")
	}

	deepMerge(baseMap, patch)

	merged, err := json.Marshal(baseMap)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal merged page")
	}

	var page Page
	if err := json.Unmarshal(merged, &page); err != nil {
		return nil, goerr.Wrap(err, "failed to decode merged page")
	}

	return &page, nil
}

// DecodeTolerant decodes a stored page, merging it over the default
// shape so records written by older versions still come back fully
// shaped.
func DecodeTolerant(data []byte) (*Page, error) {
	var patch map[string]any
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, goerr.Wrap(err, "failed to decode stored page")
	}
	return MergePatch(DefaultPage(), patch)
}

func deepMerge(dst, src map[string]any) {
	for key, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[key].(map[string]any); ok {
				deepMerge(dm, sm)
				continue
			}
		}
		dst[key] = sv
	}
}
