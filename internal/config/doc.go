// Package config loads vtree configuration.
//
// The configuration is read from vtree.json, or vtree.yaml when no JSON
// file exists. Missing fields take defaults and VTREE_PORT and
// VTREE_STRATEGY override the file.
//
// # Configuration File Structure
//
//	{
//	  "server": {"host": "localhost", "port": 8080, "title": "vtree"},
//	  "render": {"strategy": "keyed"},
//	  "log": {"level": "info", "format": "text"},
//	  "metrics": {"enabled": true, "namespace": "vtree"},
//	  "tracing": {"enabled": false, "tracerName": "vtree"},
//	  "snapshot": {
//	    "backend": "bolt",
//	    "boltPath": "snapshots.db"
//	  }
//	}
//
// The same structure in YAML:
//
//	server:
//	  port: 9000
//	render:
//	  strategy: keyed
//	snapshot:
//	  backend: s3
//	  bucket: my-bucket
//	  prefix: vtree/
//	  region: eu-west-1
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
