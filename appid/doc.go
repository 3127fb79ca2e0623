/*
Package appid implements the DER encoder for the attestation application ID.

The attestation application ID identifies, to a hardware-backed key
attestation subsystem, the application a key is attested for. The keystore
embeds the encoded blob as an opaque extension in the attestation
certificate, so the encoding must be stable byte for byte across
implementations.

The encoded structure follows this ASN.1 schema:

	AttestationApplicationId ::= SEQUENCE {
	    packageInfos     SET OF AttestationPackageInfo,
	    signatureDigests SET OF OCTET STRING
	}
	AttestationPackageInfo ::= SEQUENCE {
	    packageName OCTET STRING,
	    version     INTEGER
	}

The output is bounded by MaxSize (1024 bytes). A running size estimate is
maintained while building; packages and digests that would push the encoding
past the budget are silently dropped, never reported as an error. Signature
digests are the SHA-256 hashes of the signing certificates of the first
package only - packages may only share a UID when they share signing
certificates, so any package in the group yields the same digest set.

The emitter produces strict DER: definite minimal lengths, and SET OF
members sorted lexicographically by their encoded bytes.
*/
package appid
