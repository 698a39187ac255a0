// Package arcana exposes assets compiled into the binary so the service
// can run without any files on disk. The default background deck is used
// whenever no backgrounds directory is configured.
package arcana

import "embed"

//go:embed assets/backgrounds
var BackgroundAssets embed.FS

// BackgroundAssetDir is the path of the embedded deck inside BackgroundAssets.
const BackgroundAssetDir = "assets/backgrounds"

//go:embed assets/logo.png
var LogoData []byte
