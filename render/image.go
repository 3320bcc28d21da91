package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joshyorko/sakdash/payload"
)

// ImageSummary describes a picture in one line, since the terminal cannot
// show it.
func ImageSummary(picture payload.Image) string {
	size := humanize.Bytes(uint64(len(picture.Data)))
	format := strings.ToUpper(picture.Format)
	config, err := picture.Config()
	if err != nil {
		return fmt.Sprintf("%s image, unreadable header, %s", format, size)
	}
	return fmt.Sprintf("%s image, %d×%d px, %s", format, config.Width, config.Height, size)
}

// SaveImage writes the picture into directory under the given base name and
// returns the full file name.
func SaveImage(picture payload.Image, directory, basename string) (string, error) {
	err := os.MkdirAll(directory, 0o750)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(directory, fmt.Sprintf("%s.%s", basename, picture.Format))
	err = os.WriteFile(filename, picture.Data, 0o640)
	if err != nil {
		return "", err
	}
	return filename, nil
}
