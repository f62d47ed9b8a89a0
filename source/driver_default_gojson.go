// Package source installs go-json as the process-wide JSON driver when
// blank-imported:
//
//	import _ "github.com/reoring/wirecodec/source"
package source

import (
	wirecodec "github.com/reoring/wirecodec"
	drvgojson "github.com/reoring/wirecodec/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { wirecodec.SetJSONDriver(drvgojson.Driver()) }
