package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/pterm/pterm"
)

// Seeds a running server with generated cards so the gallery and stats
// endpoints have something to show during development.
//
// Usage: go run scripts/seed.go [baseURL]

var seedHandles = []string{
	"moonchild", "stargazer", "wanderer_7", "night-owl", "sunseeker",
	"tide_turner", "emberfox", "quietstorm", "papercrane", "halfmoon",
}

type seedRequest struct {
	Handle   string `json:"handle"`
	ImageURL string `json:"imageUrl"`
}

type seedResponse struct {
	Success bool   `json:"success"`
	Style   string `json:"style"`
	Cached  bool   `json:"cached"`
}

func main() {
	baseURL := "http://localhost:9980"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("ARCANA", pterm.NewStyle(pterm.FgMagenta)),
	).Render()

	client := &http.Client{Timeout: 90 * time.Second}

	if _, err := client.Get(baseURL + "/api/stats"); err != nil {
		pterm.Error.Printf("Server unreachable at %s: %v\n", baseURL, err)
		os.Exit(1)
	}

	progress, _ := pterm.DefaultProgressbar.WithTotal(len(seedHandles)).WithTitle("Seeding cards").Start()

	var ok, failed int
	for _, handle := range seedHandles {
		progress.UpdateTitle("Generating " + handle)

		// Inline avatars keep the seeder offline friendly, no external
		// avatar lookups needed.
		body, _ := json.Marshal(seedRequest{
			Handle:   handle,
			ImageURL: dummyAvatarDataURL(handle),
		})

		resp, err := client.Post(baseURL+"/api/outfit", "application/json", bytes.NewReader(body))
		if err != nil {
			pterm.Warning.Printf("%s: %v\n", handle, err)
			failed++
			progress.Increment()
			continue
		}

		var result seedResponse
		json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK && result.Success {
			pterm.Success.Printf("%s -> %s (cached: %v)\n", handle, result.Style, result.Cached)
			ok++
		} else {
			pterm.Warning.Printf("%s: HTTP %d\n", handle, resp.StatusCode)
			failed++
		}
		progress.Increment()
	}

	pterm.DefaultSection.Println("Done")
	pterm.Info.Printf("Seeded %d cards, %d failed\n", ok, failed)
}

// dummyAvatarDataURL renders a small flat-color square as a base64 PNG
// data URL, unique enough per handle to exercise the pipeline.
func dummyAvatarDataURL(handle string) string {
	rng := rand.New(rand.NewSource(int64(len(handle)) + int64(handle[0])))
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	c := color.RGBA{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(buf.Bytes()))
}
