// Command provider-server serves the package-metadata provider API consumed
// by the attestation application ID gatherer.
//
// The UID to package mapping is loaded once at startup from a YAML snapshot:
//
//	uids:
//	  - uid: 10001
//	    packages:
//	      - package_name: com.example.app
//	        version_code: 42
//	        signatures:
//	          - <base64 DER signing certificate>
//
// In a deployment the server registers itself under the discovery name
// sec_key_att_app_id_provider so clients can locate it through DNS SRV.
package main
