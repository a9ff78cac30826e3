// Package config loads minivue tool configuration.
//
// The configuration lives in minivue.json or minivue.yaml next to the
// templates it applies to. Both formats share one schema:
//
//	logLevel: info
//	devtools:
//	  addr: localhost:7070
//	metrics:
//	  enabled: true
//	  namespace: minivue
//	bench:
//	  iterations: 1000
//	  sizes: [10, 100, 1000]
//
// Absent fields take the package defaults. Load searches a directory for the
// first existing file in FileNames order.
package config
