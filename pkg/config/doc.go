// Package config provides configuration management for arxiv-cache.
//
// Settings are read from an optional YAML file and overridden by
// environment variables. Every attribute remembers where its value came
// from (default, file or environment) so `arxivctl configuration show`
// can explain the effective configuration.
//
// # Configuration Sources
//
//   - $ARXIV_CACHE_CONFIG_PATH/arxiv-cache.yml (default /etc/arxiv-cache/config)
//   - ARXIV_CACHE_* environment variables (take precedence)
//
// # Key Configuration Options
//
//   - ARXIV_CACHE_ALLOWED_ORIGINS: comma separated CORS origins
//   - ARXIV_CACHE_LOOKUP_URL: OAI-PMH endpoint
//   - ARXIV_CACHE_LOOKUP_TIMEOUT: upstream timeout in seconds
//   - ARXIV_CACHE_LOG_FORMAT, ARXIV_CACHE_LOG_LEVEL: logging
//
// DATABASE_URL, PORT and BIND_ADDRESS are read by the CLI directly.
package config
