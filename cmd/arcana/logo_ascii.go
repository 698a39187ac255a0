package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/qeesung/image2ascii/convert"

	"arcana"
)

func printAsciiLogo() {

	img, _, err := image.Decode(bytes.NewReader(arcana.LogoData))
	if err != nil {
		fmt.Println("ARCANA SERVER")
		return
	}

	convertOptions := convert.DefaultOptions
	convertOptions.FixedWidth = 35
	convertOptions.FixedHeight = 17

	converter := convert.NewImageConverter()
	fmt.Print(converter.Image2ASCIIString(img, &convertOptions))
}
