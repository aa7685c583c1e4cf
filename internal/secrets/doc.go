// Package secrets provides the credential primitives of autoarchive.
//
// # Passwords
//
// GeneratePassword draws every character independently and uniformly from
// PasswordAlphabet using crypto/rand. The alphabet holds 70 symbols, so
// each character carries a little over 6 bits of entropy and the default
// 16-character password about 98 bits.
//
// Passwords are never checked against existing catalog records. Collisions
// are improbable enough not to matter.
//
// # Fingerprints
//
// Fingerprint reads a file sequentially in fixed-size chunks and folds
// them into a SHA-256 digest, so memory use does not depend on file size.
// The result is 64 lowercase hex characters and is the catalog's lookup key.
//
// Catalogs written by the original tool keyed records by MD5.
// LegacyFingerprint computes that digest so archives created back then can
// still be resolved.
package secrets
