// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package config loads OyoNews configuration with koanf.
//
// Values are layered with a clear precedence: environment variables override
// the YAML file, which overrides the built-in defaults. The YAML file is found
// through CONFIG_PATH or the DefaultConfigPaths list and is optional.
//
// Environment variables are mapped explicitly (see envTransformFunc), so
// unrelated variables in the process environment never leak into the config.
package config
