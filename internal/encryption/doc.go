// Package encryption implements the layered AES-256-CBC codec used to scramble files.
//
// A passphrase is stretched once per operation into a key and IV (see KeyDeriver).
// Lock base64-encodes the input and applies one or more CBC rounds, each of which
// re-encodes its ciphertext as base64 text. Unlock reverses the rounds.
//
// Nothing in the output records the round count, and nothing authenticates it:
// a wrong passphrase or round count either fails to decode or yields garbage.
// Sealer provides an opt-in integrity check kept apart from the codec itself.
package encryption
