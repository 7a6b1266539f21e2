// Package config loads the drafting configuration from the MailMate bundle.
//
// The file is INI with a single DEFAULT section:
//
//	[DEFAULT]
//	ApiProvider = anthropic
//	ApiKey = keyring:anthropic
//	Model = claude-3-5-sonnet-latest
//
// Keys are case-insensitive. Any key can be overridden through a .env file
// next to config.ini or the process environment, both using the MMDRAFT_
// prefix (MMDRAFT_MODEL, MMDRAFT_TIMEOUT=30s). An ApiKey of the form
// keyring:<item> is read from the system keyring.
package config
