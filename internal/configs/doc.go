// Package configs manages autoarchive configuration.
//
// Configuration is a single TOML file, by default
// <user config dir>/autoarchive/config.toml:
//
//	[archiver]
//	path = "C:\\Program Files\\7-Zip\\7z.exe"
//	compression_level = 0
//
//	[remote]
//	token = ""
//	document_id = ""
//	filename = "keys_db.json"
//	base_url = "https://api.github.com"
//	timeout_seconds = 15
//
//	[storage]
//	catalog_path = ""
//	output_dir = "output_archives"
//	restore_dir = "restored_files"
//
// A missing file is not an error: LoadConfig returns DefaultConfig.
// Missing keys keep their default values.
//
// # Environment
//
// AUTOARCHIVE_TOKEN and AUTOARCHIVE_DOCUMENT_ID override the remote
// credentials from the file. ApplyEnv is called by the CLI only; library
// packages receive plain values.
//
// # Settings
//
// Settings holds the per-user directories. The catalog defaults to
// <data dir>/autoarchive/local_keys_db.json, where the data dir is
// $XDG_DATA_HOME or ~/.local/share.
//
// The file may hold the remote token, so it is written with mode 0600.
package configs
