// Package config provides configuration parsing for stateview projects.
//
// The configuration is stored in stateview.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-app",
//	  "port": 8080,
//	  "host": "localhost",
//	  "static": {
//	    "dir": "public",
//	    "prefix": "/"
//	  },
//	  "stateUrls": {
//	    "disabled": false,
//	    "denylist": ["theme_preview"]
//	  },
//	  "observability": {
//	    "metrics": true,
//	    "metricsPath": "/metrics",
//	    "tracing": false
//	  },
//	  "dev": {
//	    "hotReload": true,
//	    "watch": ["views", "public"]
//	  }
//	}
//
// All fields are optional; missing fields take the defaults from New().
package config
