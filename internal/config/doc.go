// Package config handles the vethpair HCL configuration file.
//
// A config file names the two endpoints of the pair and, optionally, the
// timeouts and logging level used by the CLI:
//
//	endpoint_a = "veth0"
//	endpoint_b = "veth1"
//
//	request_timeout  = "5s"
//	teardown_timeout = "10s"
//	rollback         = true
//	log_level        = "info"
//
// # Key Types
//
//   - [File]: decoded form of the HCL file
//
// Files are decoded with hclsimple and written with hclwrite so that
// generated defaults match what a human would write.
package config
