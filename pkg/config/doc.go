/*
Package config turns loosely typed run parameters into validated Options.

Parameters come from a key/value map (deploy files, CLI flags, library
callers) and are decoded with mapstructure, so "true", "1" and comma
separated lists work the same as native values.

	opts, err := config.Decode(map[string]any{
		"uri":     "https://example.com/locomotive/api",
		"api_key": "secret",
		"data":    true,
		"only":    "translations",
	})
*/
package config
