// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides caller identity keys.

# Identity Keys

Identity keys use HMAC-SHA256 to create deterministic, verifiable keys:

	key := auth.GenerateIdentityKey(identity, salt)
	err := auth.ValidateIdentityKey(identity, key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same identity and salt always produce the same key, so nothing has to be
stored. Keys are issued by the operator holding the salt (quickly-vote
-issue-key <identity>) and never travel through the API, so registering a
voter or transferring ownership hands the caller no one else's key.

# Identity Format

NormalizeIdentity trims whitespace and rejects empty, oversized, or
whitespace-containing identities:

	id, err := auth.NormalizeIdentity("  0xAb84...  ")
*/
package auth
