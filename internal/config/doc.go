// Package config loads, decodes and layers the client configuration.
//
// Configuration reaches a session from four sources, in the following
// priority order (earlier sources win for every field they set):
//  1. Command-line flags
//  2. Environment variables (KEEPER_*)
//  3. The JSON config file (config.json by default)
//  4. Built-in defaults
//
// [Load] never fails: a missing or malformed file yields an empty mapping.
// [Decode] turns that mapping into typed [Settings], keeping every key it
// does not recognise in [Settings.Extra] so it can be written back verbatim.
// [ResolveOverlay] applies the flag > env > config > default precedence.
package config
