package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAPIPath is appended to a deploy file "host" when no explicit uri is set.
const DefaultAPIPath = "/locomotive/api"

// deploy-only keys, consumed while building the uri.
const (
	keyHost = "host"
	keySSL  = "ssl"
)

// LoadDeployFile reads a YAML (or JSON, by extension) deploy file keyed by
// environment name and returns the parameters of env:
//
//	production:
//	  host: www.example.com
//	  email: john@example.com
//	  password: secret
func LoadDeployFile(path, env string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deploy file: %w", err)
	}

	var envs map[string]map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &envs); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &envs); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	params, ok := envs[env]
	if !ok {
		return nil, fmt.Errorf("environment %q not found in %s", env, filepath.Base(path))
	}
	return expandHost(params), nil
}

// expandHost derives "uri" from "host" (and "ssl") when uri is absent.
func expandHost(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	host, hasHost := out[keyHost]
	ssl, hasSSL := out[keySSL]
	delete(out, keyHost)
	delete(out, keySSL)

	if _, hasURI := out["uri"]; hasURI || !hasHost {
		return out
	}

	scheme := "https"
	if hasSSL {
		if b, ok := ssl.(bool); ok && !b {
			scheme = "http"
		}
	}
	h := strings.TrimRight(fmt.Sprint(host), "/")
	if strings.HasPrefix(h, "http://") || strings.HasPrefix(h, "https://") {
		out["uri"] = h + DefaultAPIPath
	} else {
		out["uri"] = scheme + "://" + h + DefaultAPIPath
	}
	return out
}

// Merge overlays params from later maps onto earlier ones. Nil values are skipped.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		for k, v := range layer {
			if v == nil {
				continue
			}
			out[k] = v
		}
	}
	return out
}
