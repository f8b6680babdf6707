// Package config provides configuration loading, merging, and validation
// for the note vault client.
//
// Configuration is assembled from multiple sources. Earlier sources win over
// later ones for every non-zero field:
//  1. Command-line flags
//  2. Environment variables
//  3. A .env file
//  4. JSON config file
//  5. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
