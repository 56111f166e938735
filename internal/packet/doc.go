// Package packet decodes BITS transmissions into packet trees.
//
// Ownership boundary:
// - packet header and payload decoding over a bits.Reader
// - read-only queries (version sum, expression evaluation)
// - re-encoding and serializable views of decoded trees
package packet
